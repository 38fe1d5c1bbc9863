package structured

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// readMicrodata collects top-level itemscope elements, i.e. those that are not
// themselves a property of another item.
func readMicrodata(doc *goquery.Document, base string) []*Item {
	var items []*Item
	doc.Find("[itemscope]").Each(func(_ int, s *goquery.Selection) {
		if _, isProp := s.Attr("itemprop"); isProp {
			return
		}
		if it := microdataItem(s, base); !it.IsEmpty() {
			items = append(items, it)
		}
	})
	return items
}

func microdataItem(scope *goquery.Selection, base string) *Item {
	it := NewItem(strings.Fields(scope.AttrOr("itemtype", ""))...)
	walkMicrodata(scope, it, base)
	return it
}

// walkMicrodata visits descendants of s that belong to item it. Nested
// itemscope elements become values and are not descended into.
func walkMicrodata(s *goquery.Selection, it *Item, base string) {
	s.Children().Each(func(_ int, child *goquery.Selection) {
		names := strings.Fields(child.AttrOr("itemprop", ""))
		_, nested := child.Attr("itemscope")

		if len(names) > 0 {
			var v Value
			if nested {
				v = ItemValue(microdataItem(child, base))
			} else {
				v = TextValue(microdataValue(child, base))
			}
			for _, name := range names {
				it.Add(name, v)
			}
		}

		if !nested {
			walkMicrodata(child, it, base)
		}
	})
}

func microdataValue(s *goquery.Selection, base string) string {
	if c, ok := s.Attr("content"); ok {
		return norm(c)
	}

	switch goquery.NodeName(s) {
	case "audio", "embed", "iframe", "img", "source", "track", "video":
		return resolveURL(base, s.AttrOr("src", ""))
	case "a", "area", "link":
		return resolveURL(base, s.AttrOr("href", ""))
	case "object":
		return resolveURL(base, s.AttrOr("data", ""))
	case "data", "meter":
		return norm(s.AttrOr("value", ""))
	case "time":
		if dt, ok := s.Attr("datetime"); ok {
			return norm(dt)
		}
	}
	return norm(textContent(s))
}

// textContent joins text nodes with spaces so adjacent block elements do not
// run together.
func textContent(s *goquery.Selection) string {
	var b strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	for _, n := range s.Nodes {
		f(n)
	}
	return b.String()
}

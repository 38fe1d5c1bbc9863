package structured

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// readRDFa collects RDFa Lite items: typeof elements that are not the value of
// an enclosing property.
func readRDFa(doc *goquery.Document, base string) []*Item {
	var items []*Item
	doc.Find("[typeof]").Each(func(_ int, s *goquery.Selection) {
		if _, isProp := s.Attr("property"); isProp {
			return
		}
		if it := rdfaItem(s, base); !it.IsEmpty() {
			items = append(items, it)
		}
	})
	return items
}

func rdfaItem(scope *goquery.Selection, base string) *Item {
	vocab := rdfaVocab(scope)

	var types []string
	for _, t := range strings.Fields(scope.AttrOr("typeof", "")) {
		if vocab != "" && !strings.Contains(t, ":") {
			t = vocab + t
		}
		types = append(types, t)
	}

	it := NewItem(types...)
	walkRDFa(scope, it, base)
	return it
}

// rdfaVocab returns the closest vocab attribute at or above s
func rdfaVocab(s *goquery.Selection) string {
	if v, ok := s.Attr("vocab"); ok {
		return v
	}
	return s.ParentsFiltered("[vocab]").First().AttrOr("vocab", "")
}

func walkRDFa(s *goquery.Selection, it *Item, base string) {
	s.Children().Each(func(_ int, child *goquery.Selection) {
		names := strings.Fields(child.AttrOr("property", ""))
		_, nested := child.Attr("typeof")

		if len(names) > 0 {
			var v Value
			if nested {
				v = ItemValue(rdfaItem(child, base))
			} else {
				v = TextValue(rdfaValue(child, base))
			}
			for _, name := range names {
				it.Add(name, v)
			}
		}

		if !nested {
			walkRDFa(child, it, base)
		}
	})
}

func rdfaValue(s *goquery.Selection, base string) string {
	if c, ok := s.Attr("content"); ok {
		return norm(c)
	}
	for _, attr := range []string{"href", "src", "resource"} {
		if v, ok := s.Attr(attr); ok {
			return resolveURL(base, v)
		}
	}
	if goquery.NodeName(s) == "time" {
		if dt, ok := s.Attr("datetime"); ok {
			return norm(dt)
		}
	}
	return norm(textContent(s))
}

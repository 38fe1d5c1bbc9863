// Package structured reads machine-readable recipe markup embedded in HTML.
// Three formats are supported: JSON-LD script blocks, Microdata attributes and
// RDFa Lite attributes. Each produces the same generic Item tree.
package structured

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Format identifies a structured-data embedding format
type Format string

const (
	FormatJSONLD    Format = "json-ld"
	FormatMicrodata Format = "microdata"
	FormatRDFa      Format = "rdfa-lite"
)

// Formats lists the formats in priority order.
var Formats = []Format{FormatJSONLD, FormatMicrodata, FormatRDFa}

// Extractor parses structured data from HTML documents.
type Extractor struct{}

// NewExtractor creates a new extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract tries each format in priority order and returns the items of the
// first one that yields any. Later formats are not attempted.
func (e *Extractor) Extract(htmlDoc, pageURL string) []*Item {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlDoc))
	if err != nil {
		return nil
	}
	for _, f := range Formats {
		if items := e.read(doc, f, pageURL); len(items) > 0 {
			return items
		}
	}
	return nil
}

// ExtractFormat runs a single format. Malformed markup yields an empty list.
func (e *Extractor) ExtractFormat(f Format, htmlDoc, pageURL string) []*Item {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlDoc))
	if err != nil {
		return nil
	}
	return e.read(doc, f, pageURL)
}

func (e *Extractor) read(doc *goquery.Document, f Format, pageURL string) []*Item {
	switch f {
	case FormatJSONLD:
		return readJSONLD(doc)
	case FormatMicrodata:
		return readMicrodata(doc, pageURL)
	case FormatRDFa:
		return readRDFa(doc, pageURL)
	}
	return nil
}

var spaceRe = regexp.MustCompile(`\s+`)

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = spaceRe.ReplaceAllString(s, " ")
	return s
}

// resolveURL makes ref absolute against base. Unparsable input is returned as is.
func resolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || base == "" {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package structured

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// readJSONLD collects items from every application/ld+json script block.
// Blocks that fail to decode are skipped.
func readJSONLD(doc *goquery.Document) []*Item {
	var items []*Item

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}

		dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
		dec.UseNumber()
		var data any
		if err := dec.Decode(&data); err != nil {
			return
		}
		items = append(items, jsonLDTopLevel(data)...)
	})

	return items
}

func jsonLDTopLevel(data any) []*Item {
	var out []*Item
	switch v := data.(type) {
	case []any:
		for _, el := range v {
			out = append(out, jsonLDTopLevel(el)...)
		}
	case map[string]any:
		if graph, ok := v["@graph"]; ok {
			return jsonLDTopLevel(graph)
		}
		if it := jsonLDItem(v); !it.IsEmpty() {
			out = append(out, it)
		}
	}
	return out
}

func jsonLDItem(obj map[string]any) *Item {
	it := NewItem(jsonLDTypes(obj["@type"])...)

	for _, key := range sortedKeys(obj) {
		if strings.HasPrefix(key, "@") {
			continue
		}
		for _, v := range jsonLDValues(obj[key]) {
			it.Add(key, v)
		}
	}
	return it
}

func jsonLDTypes(raw any) []string {
	switch v := raw.(type) {
	case string:
		return []string{v}
	case []any:
		var out []string
		for _, t := range v {
			if s, ok := t.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// jsonLDValues flattens a JSON value into property values. Arrays are expanded
// in order, scalars become text and objects become nested items.
func jsonLDValues(raw any) []Value {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return []Value{TextValue(v)}
	case json.Number:
		return []Value{TextValue(v.String())}
	case bool:
		if v {
			return []Value{TextValue("true")}
		}
		return []Value{TextValue("false")}
	case []any:
		var out []Value
		for _, el := range v {
			out = append(out, jsonLDValues(el)...)
		}
		return out
	case map[string]any:
		if lit, ok := v["@value"]; ok {
			return jsonLDValues(lit)
		}
		return []Value{ItemValue(jsonLDItem(v))}
	}
	return nil
}

package structured

import "strings"

// Value is a single property value: either plain text or a nested item.
type Value struct {
	Text string
	Item *Item
}

// TextValue wraps a string
func TextValue(s string) Value {
	return Value{Text: s}
}

// ItemValue wraps a nested item
func ItemValue(it *Item) Value {
	return Value{Item: it}
}

// IsItem reports whether the value holds a nested item
func (v Value) IsItem() bool {
	return v.Item != nil
}

// Item is a parsed structured-data object: a set of type labels and an ordered
// property-name to value-list mapping.
type Item struct {
	Types      []string
	Properties map[string][]Value
	names      []string
}

// NewItem creates an empty item with the given types
func NewItem(types ...string) *Item {
	return &Item{
		Types:      types,
		Properties: make(map[string][]Value),
	}
}

// Add appends a value to the named property, keeping first-seen property order.
func (it *Item) Add(name string, v Value) {
	if _, ok := it.Properties[name]; !ok {
		it.names = append(it.names, name)
	}
	it.Properties[name] = append(it.Properties[name], v)
}

// Names returns the property names in declaration order
func (it *Item) Names() []string {
	return it.names
}

// Values returns all values of a property
func (it *Item) Values(name string) []Value {
	return it.Properties[name]
}

// FirstText returns the first plain-text value of a property, or "".
func (it *Item) FirstText(name string) string {
	for _, v := range it.Properties[name] {
		if !v.IsItem() {
			return v.Text
		}
	}
	return ""
}

// HasType reports whether any type label contains substr, ignoring case.
func (it *Item) HasType(substr string) bool {
	substr = strings.ToLower(substr)
	for _, t := range it.Types {
		if strings.Contains(strings.ToLower(t), substr) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the item carries neither types nor properties
func (it *Item) IsEmpty() bool {
	return len(it.Types) == 0 && len(it.names) == 0
}

// Package cssmodel holds the data shapes passed between the extraction,
// normalization and matching stages.
package cssmodel

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// DefaultVariant is the variant key of declarations that apply in the base state.
const DefaultVariant = "default"

// Declaration is a single CSS property/value tuple.
type Declaration struct {
	Property string
	Value    string
}

// IsCustomProperty reports whether the declaration defines a CSS variable (--name).
func (d Declaration) IsCustomProperty() bool {
	return IsCustomProperty(d.Property)
}

// IsCustomProperty reports whether prop is a CSS variable name.
func IsCustomProperty(prop string) bool {
	return strings.HasPrefix(prop, "--")
}

// MarshalJSON encodes the declaration as a [property, value] pair.
func (d Declaration) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{d.Property, d.Value})
}

// UnmarshalJSON decodes a [property, value] pair.
func (d *Declaration) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("declaration: expected [property, value], got %d elements", len(pair))
	}
	d.Property, d.Value = pair[0], pair[1]
	return nil
}

func (d Declaration) String() string {
	return d.Property + ": " + d.Value
}

// RuleRecord is one extracted CSS rule. Rules sharing a selector inside the
// same at-rule context are merged into one record, declarations appended in
// source order.
type RuleRecord struct {
	Selector     string
	AtRuleName   string // "media" for rules nested in @media, empty at top level
	AtRuleParams string
	Declarations []Declaration
}

// Ordered is a string-keyed map that remembers insertion order. Setting an
// existing key replaces its value and keeps its position.
type Ordered[V any] struct {
	keys  []string
	items map[string]V
}

// NewOrdered returns an empty ordered map.
func NewOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{items: make(map[string]V)}
}

// Set stores value under key.
func (o *Ordered[V]) Set(key string, value V) {
	if o.items == nil {
		o.items = make(map[string]V)
	}
	if _, ok := o.items[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.items[key] = value
}

// Get returns the value stored under key.
func (o *Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.items[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Ordered[V]) Has(key string) bool {
	_, ok := o.items[key]
	return ok
}

// Delete removes key, keeping the order of the remaining keys.
func (o *Ordered[V]) Delete(key string) {
	if _, ok := o.items[key]; !ok {
		return
	}
	delete(o.items, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = slices.Delete(o.keys, i, i+1)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (o *Ordered[V]) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Ordered[V]) Len() int {
	return len(o.keys)
}

// PropertyMap maps property names to values in declaration order.
type PropertyMap struct {
	Ordered[string]
}

// NewPropertyMap builds a map from declarations. Later declarations of the
// same property win.
func NewPropertyMap(decls ...Declaration) *PropertyMap {
	m := &PropertyMap{}
	for _, d := range decls {
		m.Set(d.Property, d.Value)
	}
	return m
}

// Declarations returns the map as tuples in order.
func (m *PropertyMap) Declarations() []Declaration {
	out := make([]Declaration, 0, m.Len())
	for _, k := range m.keys {
		out = append(out, Declaration{Property: k, Value: m.items[k]})
	}
	return out
}

// Equal reports whether both maps hold the same properties with the same
// values, regardless of order.
func (m *PropertyMap) Equal(other *PropertyMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for k, v := range m.items {
		if ov, ok := other.items[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// DeclarationGroups maps a base selector to its declarations.
type DeclarationGroups = Ordered[[]Declaration]

// VariantGroups maps a variant key to the declarations grouped under it.
type VariantGroups = Ordered[*DeclarationGroups]

// ClassMap maps a base selector to its normalized properties.
type ClassMap = Ordered[*PropertyMap]

// VariantMap maps a variant key to a normalized class map.
type VariantMap = Ordered[*ClassMap]

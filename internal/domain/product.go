package domain

import "encoding/json"

// ScalarKind tags the payload carried by a Scalar
type ScalarKind int

const (
	ScalarNull ScalarKind = iota
	ScalarString
	ScalarNumber
	ScalarBool
)

// Scalar is a single string, number, boolean or null attribute value
type Scalar struct {
	Kind   ScalarKind
	Text   string
	Number float64
	Bool   bool
}

// ValueKind tags the shape of a Value
type ValueKind int

const (
	ValueScalar ValueKind = iota
	ValueNested
)

// Value is the value of one product attribute: either a scalar or a nested list of sub-items.
type Value struct {
	Kind   ValueKind
	Scalar Scalar
	Nested []NestedItem
}

// NestedItem is one sub-item of a nested attribute such as a feature list.
// Value holds the sub-item's "value" field (or the sub-item itself when it is a scalar);
// the remaining scalar fields are kept as Attributes.
type NestedItem struct {
	Key        string
	Value      Scalar
	Attributes map[string]Scalar
}

// NullScalar returns a null scalar
func NullScalar() Scalar { return Scalar{Kind: ScalarNull} }

// StringScalar wraps a string
func StringScalar(s string) Scalar { return Scalar{Kind: ScalarString, Text: s} }

// NumberScalar wraps a number
func NumberScalar(n float64) Scalar { return Scalar{Kind: ScalarNumber, Number: n} }

// BoolScalar wraps a boolean
func BoolScalar(b bool) Scalar { return Scalar{Kind: ScalarBool, Bool: b} }

// ScalarValue lifts a Scalar into a Value
func ScalarValue(s Scalar) Value { return Value{Kind: ValueScalar, Scalar: s} }

// StringValue is shorthand for ScalarValue(StringScalar(s))
func StringValue(s string) Value { return ScalarValue(StringScalar(s)) }

// NumberValue is shorthand for ScalarValue(NumberScalar(n))
func NumberValue(n float64) Value { return ScalarValue(NumberScalar(n)) }

// BoolValue is shorthand for ScalarValue(BoolScalar(b))
func BoolValue(b bool) Value { return ScalarValue(BoolScalar(b)) }

// NestedValue builds a nested Value from its sub-items
func NestedValue(items ...NestedItem) Value {
	if items == nil {
		items = []NestedItem{}
	}
	return Value{Kind: ValueNested, Nested: items}
}

// IsNested reports whether the value is a nested list
func (v Value) IsNested() bool { return v.Kind == ValueNested }

type recordField struct {
	key   string
	value Value
}

// ProductRecord is a product's attributes in insertion order.
// The zero value is an empty record ready to use.
type ProductRecord struct {
	fields []recordField
	index  map[string]int
}

// NewProductRecord creates an empty product record
func NewProductRecord() *ProductRecord {
	return &ProductRecord{index: make(map[string]int)}
}

// Set stores a value. Re-setting an existing key keeps its original position.
func (r *ProductRecord) Set(key string, value Value) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.fields[i].value = value
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, recordField{key: key, value: value})
}

// Get returns the value stored under key
func (r *ProductRecord) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	i, ok := r.index[key]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].value, true
}

// Has reports whether key is present
func (r *ProductRecord) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns the record's keys in insertion order
func (r *ProductRecord) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.key
	}
	return keys
}

// Len returns the number of keys
func (r *ProductRecord) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// Without returns a copy of the record with the given keys removed
func (r *ProductRecord) Without(keys ...string) *ProductRecord {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}

	out := NewProductRecord()
	if r == nil {
		return out
	}
	for _, f := range r.fields {
		if !drop[f.key] {
			out.Set(f.key, f.value)
		}
	}
	return out
}

// RowKind identifies how a comparison row is rendered
type RowKind string

const (
	RowTitle      RowKind = "title"
	RowScalar     RowKind = "scalar"
	RowNestedList RowKind = "nested-list"
)

// ComparisonRow is one category of a side-by-side product comparison.
// Left/Right are nil when the category is absent on that side.
// For nested-list rows, a nested side fills LeftItems/RightItems instead.
type ComparisonRow struct {
	Category   string   `json:"category"`
	Kind       RowKind  `json:"kind"`
	Left       *string  `json:"left"`
	Right      *string  `json:"right"`
	LeftItems  []string `json:"leftItems,omitempty"`
	RightItems []string `json:"rightItems,omitempty"`
}

// MarshalJSON always writes both item lists for nested-list rows, so an absent
// side reads as [] rather than disappearing.
func (r ComparisonRow) MarshalJSON() ([]byte, error) {
	type row ComparisonRow
	if r.Kind != RowNestedList {
		return json.Marshal(row(r))
	}

	items := func(list []string) []string {
		if list == nil {
			return []string{}
		}
		return list
	}
	return json.Marshal(struct {
		Category   string   `json:"category"`
		Kind       RowKind  `json:"kind"`
		Left       *string  `json:"left"`
		Right      *string  `json:"right"`
		LeftItems  []string `json:"leftItems"`
		RightItems []string `json:"rightItems"`
	}{r.Category, r.Kind, r.Left, r.Right, items(r.LeftItems), items(r.RightItems)})
}

// ComparisonTable is the ordered result of comparing two product records
type ComparisonTable []ComparisonRow

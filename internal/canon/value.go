package canon

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the parameter values a canonical key can
// be built from. Only String, Int, Bool, Array and Object implement it.
// There is no float and no null: both would make keys ambiguous.
type Value interface {
	canonValue()
}

// String is a string parameter.
type String string

func (String) canonValue() {}

// Int is an integer parameter.
type Int int64

func (Int) canonValue() {}

// Bool is a boolean parameter.
type Bool bool

func (Bool) canonValue() {}

// Array is an ordered list of parameters.
type Array []Value

func (Array) canonValue() {}

// Object maps parameter names to values. Keys are encoded in sorted order,
// so insertion order never affects the canonical form.
type Object map[string]Value

func (Object) canonValue() {}

// Pair is a key-value pair for building an Object.
type Pair struct {
	Key   string
	Value Value
}

// P is shorthand for Pair.
func P(key string, value Value) Pair {
	return Pair{Key: key, Value: value}
}

// NewObject builds an Object from pairs. Later pairs overwrite earlier ones.
func NewObject(pairs ...Pair) Object {
	obj := make(Object, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// NewArray builds an Array from values.
func NewArray(vals ...Value) Array {
	return Array(vals)
}

// SortedKeys returns the object's keys in RFC 8785 order (UTF-16 code units).
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// SortKeys sorts keys in place in RFC 8785 order.
// Byte-wise UTF-8 order differs for characters outside the BMP.
func SortKeys(keys []string) {
	slices.SortFunc(keys, CompareKeys)
}

// CompareKeys compares two strings by UTF-16 code units.
func CompareKeys(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	for i := 0; i < len(a16) && i < len(b16); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}

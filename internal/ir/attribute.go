package ir

import (
	"sort"
)

// Attribute is a dialect-defined attribute kind: immutable-by-convention
// metadata owned by whatever holds it.
type Attribute interface {
	AttrID() AttrID
	// Print writes the payload that follows the qualified identifier.
	Print(p *Printer)
	Verify(ctx *Context) error
	// Equal compares against another attribute. Implementations return
	// false when other is of a different concrete kind.
	Equal(other Attribute) bool
	Clone() Attribute
}

// AttrEqual compares two attributes. Attributes of different kinds are never
// equal; otherwise the kind's own Equal decides.
func AttrEqual(a, b Attribute) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.AttrID() != b.AttrID() {
		return false
	}
	return a.Equal(b)
}

// Is reports whether a is of concrete kind T.
func Is[T Attribute](a Attribute) bool {
	_, ok := a.(T)
	return ok
}

// As downcasts a to concrete kind T.
func As[T Attribute](a Attribute) (T, bool) {
	t, ok := a.(T)
	return t, ok
}

// AttributeDict maps identifiers to attributes. Insertion order plays no part
// in lookup, equality or printing. The zero value is an empty dictionary.
type AttributeDict struct {
	m map[Identifier]Attribute
}

// NewAttributeDict returns a dictionary holding entries.
func NewAttributeDict(entries map[Identifier]Attribute) AttributeDict {
	d := AttributeDict{}
	for k, v := range entries {
		d.Insert(k, v)
	}
	return d
}

// Insert sets key to attr, replacing any previous value.
func (d *AttributeDict) Insert(key Identifier, attr Attribute) {
	if d.m == nil {
		d.m = make(map[Identifier]Attribute)
	}
	d.m[key] = attr
}

// Get looks up key.
func (d AttributeDict) Get(key Identifier) (Attribute, bool) {
	a, ok := d.m[key]
	return a, ok
}

// Remove deletes key if present.
func (d *AttributeDict) Remove(key Identifier) {
	delete(d.m, key)
}

// Len returns the number of entries.
func (d AttributeDict) Len() int { return len(d.m) }

// Keys returns the keys in sorted order.
func (d AttributeDict) Keys() []Identifier {
	keys := make([]Identifier, 0, len(d.m))
	for k := range d.m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Equal reports whether both dictionaries hold the same key/value pairs.
func (d AttributeDict) Equal(other AttributeDict) bool {
	if len(d.m) != len(other.m) {
		return false
	}
	for k, v := range d.m {
		w, ok := other.m[k]
		if !ok || !AttrEqual(v, w) {
			return false
		}
	}
	return true
}

// Clone deep-copies the dictionary.
func (d AttributeDict) Clone() AttributeDict {
	out := AttributeDict{}
	for k, v := range d.m {
		out.Insert(k, v.Clone())
	}
	return out
}

// Verify verifies every value, in key order.
func (d AttributeDict) Verify(ctx *Context) error {
	for _, k := range d.Keys() {
		if err := d.m[k].Verify(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Print writes {key: attr, ...} with keys sorted.
func (d AttributeDict) Print(p *Printer) {
	p.WriteString("{")
	for i, k := range d.Keys() {
		if i > 0 {
			p.WriteString(", ")
		}
		p.WriteString(string(k))
		p.WriteString(": ")
		p.Attr(d.m[k])
	}
	p.WriteString("}")
}

// ParseAttributeDict reads the form written by AttributeDict.Print.
func ParseAttributeDict(st *ParseState) (AttributeDict, error) {
	d := AttributeDict{}
	if err := st.In.Expect('{'); err != nil {
		return d, err
	}
	st.In.SkipSpaces()
	if st.In.Consume('}') {
		return d, nil
	}
	for {
		st.In.SkipSpaces()
		key, err := st.In.Identifier()
		if err != nil {
			return d, err
		}
		if err := st.In.ExpectSpaced(':'); err != nil {
			return d, err
		}
		val, err := ParseAttr(st)
		if err != nil {
			return d, err
		}
		d.Insert(Identifier(key), val)

		st.In.SkipSpaces()
		if st.In.Consume('}') {
			return d, nil
		}
		if !st.In.Consume(',') {
			return d, st.In.Unexpected("`,`", "`}`")
		}
	}
}

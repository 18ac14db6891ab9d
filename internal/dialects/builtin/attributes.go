package builtin

import (
	"github.com/cockroachdb/errors"

	"github.com/roach88/irkit/internal/apint"
	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/ir"
	"github.com/roach88/irkit/internal/irfmt"
	"github.com/roach88/irkit/internal/location"
)

// Attribute kinds of the builtin dialect.
var (
	IdentifierAttrID = ir.MustAttrID("builtin.identifier")
	StringAttrID     = ir.MustAttrID("builtin.string")
	IntegerAttrID    = ir.MustAttrID("builtin.integer")
	DictAttrID       = ir.MustAttrID("builtin.dict")
	VecAttrID        = ir.MustAttrID("builtin.vec")
	UnitAttrID       = ir.MustAttrID("builtin.unit")
	TypeAttrID       = ir.MustAttrID("builtin.type")
)

// ErrIntegerBitwidth is the cause when an integer attribute's value and
// declared type disagree on bit width.
var ErrIntegerBitwidth = errors.New("The bitwidth type does not match the bitwidth of the value.")

// IdentifierAttr holds an Identifier.
type IdentifierAttr struct {
	value ir.Identifier
}

// NewIdentifierAttr returns an attribute holding value.
func NewIdentifierAttr(value ir.Identifier) *IdentifierAttr {
	return &IdentifierAttr{value: value}
}

func (a *IdentifierAttr) Value() ir.Identifier   { return a.value }
func (*IdentifierAttr) AttrID() ir.AttrID        { return IdentifierAttrID }
func (a *IdentifierAttr) Print(p *ir.Printer)    { p.WriteString(string(a.value)) }
func (*IdentifierAttr) Verify(*ir.Context) error { return nil }
func (a *IdentifierAttr) Clone() ir.Attribute    { return &IdentifierAttr{value: a.value} }

func (a *IdentifierAttr) Equal(other ir.Attribute) bool {
	b, ok := other.(*IdentifierAttr)
	return ok && a.value == b.value
}

func parseIdentifierAttr(st *ir.ParseState) (ir.Attribute, error) {
	id, err := st.In.Identifier()
	if err != nil {
		return nil, err
	}
	return NewIdentifierAttr(ir.Identifier(id)), nil
}

// StringAttr holds a string, printed as a quoted literal.
type StringAttr struct {
	value string
}

// NewStringAttr returns an attribute holding value.
func NewStringAttr(value string) *StringAttr {
	return &StringAttr{value: value}
}

func (a *StringAttr) Value() string          { return a.value }
func (*StringAttr) AttrID() ir.AttrID        { return StringAttrID }
func (a *StringAttr) Print(p *ir.Printer)    { p.WriteString(irfmt.Quote(a.value)) }
func (*StringAttr) Verify(*ir.Context) error { return nil }
func (a *StringAttr) Clone() ir.Attribute    { return &StringAttr{value: a.value} }

func (a *StringAttr) Equal(other ir.Attribute) bool {
	b, ok := other.(*StringAttr)
	return ok && a.value == b.value
}

func parseStringAttr(st *ir.ParseState) (ir.Attribute, error) {
	s, err := st.In.QuotedString()
	if err != nil {
		return nil, err
	}
	return NewStringAttr(s), nil
}

// IntegerAttr is an integer value of an integer type, printed <15: si64>.
// The value's bit width is checked against the type only by Verify.
type IntegerAttr struct {
	ty  ir.TypeHandle[IntegerType]
	val apint.APInt
}

// NewIntegerAttr pairs val with its declared type. The widths are not
// checked until Verify.
func NewIntegerAttr(ty ir.TypeHandle[IntegerType], val apint.APInt) *IntegerAttr {
	return &IntegerAttr{ty: ty, val: val}
}

// Value returns the integer value.
func (a *IntegerAttr) Value() apint.APInt { return a.val }

// IntegerType returns the declared type.
func (a *IntegerAttr) IntegerType() ir.TypeHandle[IntegerType] { return a.ty }

// Type implements TypedAttrInterface.
func (a *IntegerAttr) Type() ir.TypePtr { return a.ty.Ptr() }

func (*IntegerAttr) AttrID() ir.AttrID { return IntegerAttrID }

func (a *IntegerAttr) Print(p *ir.Printer) {
	ty := a.ty.Deref()
	p.WriteString("<")
	p.WriteString(a.val.String(ty.Signedness() == Signed))
	p.WriteString(": ")
	ty.Print(p)
	p.WriteString(">")
}

func (a *IntegerAttr) Verify(*ir.Context) error {
	if a.ty.Deref().Width() != a.val.BitWidth() {
		return diag.Verify(location.Unknown, ErrIntegerBitwidth)
	}
	return nil
}

func (a *IntegerAttr) Equal(other ir.Attribute) bool {
	b, ok := other.(*IntegerAttr)
	return ok && a.ty.Ptr() == b.ty.Ptr() && a.val.Equal(b.val)
}

func (a *IntegerAttr) Clone() ir.Attribute {
	return &IntegerAttr{ty: a.ty, val: a.val}
}

func isNumeral(c rune) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+'
}

func parseIntegerAttr(st *ir.ParseState) (ir.Attribute, error) {
	if err := st.In.Expect('<'); err != nil {
		return nil, err
	}
	st.In.SkipSpaces()

	loc := st.In.Loc()
	var digits []rune
	for {
		c, ok := st.In.Peek()
		if !ok || !isNumeral(c) {
			break
		}
		digits = append(digits, c)
		st.In.Next()
	}
	if len(digits) == 0 {
		return nil, st.In.Unexpected("integer literal")
	}

	if err := st.In.ExpectSpaced(':'); err != nil {
		return nil, err
	}
	ty, err := ParseIntegerType(st)
	if err != nil {
		return nil, err
	}
	if err := st.In.Expect('>'); err != nil {
		return nil, err
	}

	val, err := apint.FromString(string(digits), ty.Deref().Width(), 10)
	if err != nil {
		return nil, diag.Input(loc, err)
	}
	return NewIntegerAttr(ty, val), nil
}

// DictAttr is an attribute holding an AttributeDict.
type DictAttr struct {
	dict ir.AttributeDict
}

// NewDictAttr builds a dictionary from entries.
func NewDictAttr(entries map[ir.Identifier]ir.Attribute) *DictAttr {
	return &DictAttr{dict: ir.NewAttributeDict(entries)}
}

// Insert sets key, replacing any previous value.
func (a *DictAttr) Insert(key ir.Identifier, val ir.Attribute) { a.dict.Insert(key, val) }

// Remove deletes key.
func (a *DictAttr) Remove(key ir.Identifier) { a.dict.Remove(key) }

// Lookup finds key.
func (a *DictAttr) Lookup(key ir.Identifier) (ir.Attribute, bool) { return a.dict.Get(key) }

// Dict returns the underlying dictionary.
func (a *DictAttr) Dict() ir.AttributeDict { return a.dict }

func (*DictAttr) AttrID() ir.AttrID              { return DictAttrID }
func (a *DictAttr) Print(p *ir.Printer)          { a.dict.Print(p) }
func (a *DictAttr) Verify(ctx *ir.Context) error { return a.dict.Verify(ctx) }
func (a *DictAttr) Clone() ir.Attribute          { return &DictAttr{dict: a.dict.Clone()} }

func (a *DictAttr) Equal(other ir.Attribute) bool {
	b, ok := other.(*DictAttr)
	return ok && a.dict.Equal(b.dict)
}

func parseDictAttr(st *ir.ParseState) (ir.Attribute, error) {
	d, err := ir.ParseAttributeDict(st)
	if err != nil {
		return nil, err
	}
	return &DictAttr{dict: d}, nil
}

// VecAttr is an ordered list of attributes, printed [a, b].
type VecAttr struct {
	elems []ir.Attribute
}

// NewVecAttr returns a vector holding a copy of elems.
func NewVecAttr(elems ...ir.Attribute) *VecAttr {
	return &VecAttr{elems: append([]ir.Attribute(nil), elems...)}
}

// Elems returns the elements.
func (a *VecAttr) Elems() []ir.Attribute { return append([]ir.Attribute(nil), a.elems...) }

// Len returns the element count.
func (a *VecAttr) Len() int { return len(a.elems) }

func (*VecAttr) AttrID() ir.AttrID { return VecAttrID }

func (a *VecAttr) Print(p *ir.Printer) {
	p.WriteString("[")
	for i, e := range a.elems {
		if i > 0 {
			p.WriteString(", ")
		}
		p.Attr(e)
	}
	p.WriteString("]")
}

func (a *VecAttr) Verify(ctx *ir.Context) error {
	for _, e := range a.elems {
		if err := e.Verify(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *VecAttr) Equal(other ir.Attribute) bool {
	b, ok := other.(*VecAttr)
	if !ok || len(a.elems) != len(b.elems) {
		return false
	}
	for i := range a.elems {
		if !ir.AttrEqual(a.elems[i], b.elems[i]) {
			return false
		}
	}
	return true
}

func (a *VecAttr) Clone() ir.Attribute {
	out := &VecAttr{elems: make([]ir.Attribute, len(a.elems))}
	for i, e := range a.elems {
		out.elems[i] = e.Clone()
	}
	return out
}

func parseVecAttr(st *ir.ParseState) (ir.Attribute, error) {
	if err := st.In.Expect('['); err != nil {
		return nil, err
	}
	st.In.SkipSpaces()
	v := &VecAttr{}
	if st.In.Consume(']') {
		return v, nil
	}
	for {
		e, err := ir.ParseAttr(st)
		if err != nil {
			return nil, err
		}
		v.elems = append(v.elems, e)
		st.In.SkipSpaces()
		if st.In.Consume(']') {
			return v, nil
		}
		if !st.In.Consume(',') {
			return nil, st.In.Unexpected("`,`", "`]`")
		}
		st.In.SkipSpaces()
	}
}

// UnitAttr carries meaning only by being present.
type UnitAttr struct{}

func NewUnitAttr() *UnitAttr { return &UnitAttr{} }

func (*UnitAttr) AttrID() ir.AttrID        { return UnitAttrID }
func (*UnitAttr) Print(*ir.Printer)        {}
func (*UnitAttr) Verify(*ir.Context) error { return nil }
func (*UnitAttr) Clone() ir.Attribute      { return &UnitAttr{} }

func (*UnitAttr) Equal(other ir.Attribute) bool {
	_, ok := other.(*UnitAttr)
	return ok
}

func parseUnitAttr(*ir.ParseState) (ir.Attribute, error) { return NewUnitAttr(), nil }

// TypeAttr holds a type.
type TypeAttr struct {
	ty ir.TypePtr
}

func NewTypeAttr(ty ir.TypePtr) *TypeAttr { return &TypeAttr{ty: ty} }

// Type implements TypedAttrInterface.
func (a *TypeAttr) Type() ir.TypePtr { return a.ty }

func (*TypeAttr) AttrID() ir.AttrID          { return TypeAttrID }
func (a *TypeAttr) Print(p *ir.Printer)      { p.Type(a.ty) }
func (a *TypeAttr) Verify(*ir.Context) error { return a.ty.Verify() }
func (a *TypeAttr) Clone() ir.Attribute      { return &TypeAttr{ty: a.ty} }

func (a *TypeAttr) Equal(other ir.Attribute) bool {
	b, ok := other.(*TypeAttr)
	return ok && a.ty == b.ty
}

func parseTypeAttr(st *ir.ParseState) (ir.Attribute, error) {
	ty, err := ir.ParseType(st)
	if err != nil {
		return nil, err
	}
	return NewTypeAttr(ty), nil
}

package builtin

import (
	"strconv"

	"github.com/roach88/irkit/internal/canon"
	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/ir"
	"github.com/roach88/irkit/internal/location"
)

// Type kinds of the builtin dialect.
var (
	IntegerTypeID  = ir.MustTypeID("builtin.integer")
	FunctionTypeID = ir.MustTypeID("builtin.function")
	UnitTypeID     = ir.MustTypeID("builtin.unit")
)

// Signedness of an integer type.
type Signedness int

const (
	Signless Signedness = iota // no sign semantics; values print unsigned
	Signed                     // two's complement
	Unsigned
)

// MaxIntegerWidth is the widest integer type the parser accepts.
const MaxIntegerWidth = 1 << 24

func (s Signedness) prefix() string {
	switch s {
	case Signed:
		return "si"
	case Unsigned:
		return "ui"
	default:
		return "i"
	}
}

func (s Signedness) String() string {
	switch s {
	case Signed:
		return "signed"
	case Unsigned:
		return "unsigned"
	default:
		return "signless"
	}
}

// IntegerType is a fixed-width integer, printed si64, ui8, i1.
type IntegerType struct {
	width int
	sign  Signedness
}

// GetIntegerType interns an integer type.
func GetIntegerType(ctx *ir.Context, width int, sign Signedness) ir.TypeHandle[IntegerType] {
	return ir.Intern(ctx, IntegerType{width: width, sign: sign})
}

func (IntegerType) TypeID() ir.TypeID { return IntegerTypeID }

// Width returns the bit width.
func (t IntegerType) Width() int { return t.width }

// Signedness returns the signedness.
func (t IntegerType) Signedness() Signedness { return t.sign }

func (t IntegerType) Params() canon.Object {
	return canon.NewObject(
		canon.P("width", canon.Int(t.width)),
		canon.P("sign", canon.String(t.sign.prefix())),
	)
}

func (t IntegerType) Print(p *ir.Printer) {
	p.WriteString(t.sign.prefix())
	p.WriteString(strconv.Itoa(t.width))
}

func (t IntegerType) Verify(*ir.Context) error {
	if t.width <= 0 {
		return diag.VerifyErr(location.Unknown, "Integer type width must be positive, got %d", t.width)
	}
	if t.width > MaxIntegerWidth {
		return diag.VerifyErr(location.Unknown, "Integer type width %d exceeds the maximum of %d", t.width, MaxIntegerWidth)
	}
	return nil
}

// ParseIntegerType reads an integer type payload. Other grammars embed it
// directly, as the integer attribute does.
func ParseIntegerType(st *ir.ParseState) (ir.TypeHandle[IntegerType], error) {
	var sign Signedness
	switch {
	case st.In.ConsumeString("si"):
		sign = Signed
	case st.In.ConsumeString("ui"):
		sign = Unsigned
	case st.In.ConsumeString("i"):
		sign = Signless
	default:
		return ir.TypeHandle[IntegerType]{}, st.In.Unexpected("si", "ui", "i")
	}

	loc := st.In.Loc()
	digits := st.In.Digits()
	if digits == "" {
		return ir.TypeHandle[IntegerType]{}, st.In.Unexpected("bit width")
	}
	width, err := strconv.Atoi(digits)
	if err != nil || width <= 0 {
		return ir.TypeHandle[IntegerType]{}, diag.InputErr(loc, "Invalid integer width %s", digits)
	}
	if width > MaxIntegerWidth {
		return ir.TypeHandle[IntegerType]{}, diag.InputErr(loc, "Integer width %s exceeds the maximum of %d", digits, MaxIntegerWidth)
	}
	return GetIntegerType(st.Ctx, width, sign), nil
}

func parseIntegerType(st *ir.ParseState) (ir.TypePtr, error) {
	h, err := ParseIntegerType(st)
	if err != nil {
		return ir.TypePtr{}, err
	}
	return h.Ptr(), nil
}

// FunctionType maps input types to result types.
type FunctionType struct {
	inputs  []ir.TypePtr
	results []ir.TypePtr
}

// GetFunctionType interns a function type.
func GetFunctionType(ctx *ir.Context, inputs, results []ir.TypePtr) ir.TypeHandle[FunctionType] {
	return ir.Intern(ctx, FunctionType{
		inputs:  append([]ir.TypePtr(nil), inputs...),
		results: append([]ir.TypePtr(nil), results...),
	})
}

func (FunctionType) TypeID() ir.TypeID { return FunctionTypeID }

// Inputs returns the argument types.
func (t FunctionType) Inputs() []ir.TypePtr { return append([]ir.TypePtr(nil), t.inputs...) }

// Results returns the result types.
func (t FunctionType) Results() []ir.TypePtr { return append([]ir.TypePtr(nil), t.results...) }

func typeKeys(ts []ir.TypePtr) canon.Array {
	keys := make(canon.Array, len(ts))
	for i, t := range ts {
		keys[i] = canon.String(t.Key())
	}
	return keys
}

func (t FunctionType) Params() canon.Object {
	return canon.NewObject(
		canon.P("inputs", typeKeys(t.inputs)),
		canon.P("results", typeKeys(t.results)),
	)
}

func printTypeList(p *ir.Printer, ts []ir.TypePtr) {
	p.WriteString("(")
	for i, t := range ts {
		if i > 0 {
			p.WriteString(", ")
		}
		p.Type(t)
	}
	p.WriteString(")")
}

func (t FunctionType) Print(p *ir.Printer) {
	p.WriteString("<")
	printTypeList(p, t.inputs)
	p.WriteString(" -> ")
	printTypeList(p, t.results)
	p.WriteString(">")
}

func (t FunctionType) Verify(*ir.Context) error {
	for _, ts := range [][]ir.TypePtr{t.inputs, t.results} {
		for _, ty := range ts {
			if err := ty.Verify(); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseTypeList(st *ir.ParseState) ([]ir.TypePtr, error) {
	if err := st.In.Expect('('); err != nil {
		return nil, err
	}
	st.In.SkipSpaces()
	var ts []ir.TypePtr
	if st.In.Consume(')') {
		return ts, nil
	}
	for {
		ty, err := ir.ParseType(st)
		if err != nil {
			return nil, err
		}
		ts = append(ts, ty)
		st.In.SkipSpaces()
		if st.In.Consume(')') {
			return ts, nil
		}
		if !st.In.Consume(',') {
			return nil, st.In.Unexpected("`,`", "`)`")
		}
		st.In.SkipSpaces()
	}
}

func parseFunctionType(st *ir.ParseState) (ir.TypePtr, error) {
	if err := st.In.Expect('<'); err != nil {
		return ir.TypePtr{}, err
	}
	inputs, err := parseTypeList(st)
	if err != nil {
		return ir.TypePtr{}, err
	}
	st.In.SkipSpaces()
	if !st.In.ConsumeString("->") {
		return ir.TypePtr{}, st.In.Unexpected("`->`")
	}
	st.In.SkipSpaces()
	results, err := parseTypeList(st)
	if err != nil {
		return ir.TypePtr{}, err
	}
	if err := st.In.Expect('>'); err != nil {
		return ir.TypePtr{}, err
	}
	return GetFunctionType(st.Ctx, inputs, results).Ptr(), nil
}

// UnitType is the type with a single value. Its payload is empty.
type UnitType struct{}

// GetUnitType interns the unit type.
func GetUnitType(ctx *ir.Context) ir.TypeHandle[UnitType] {
	return ir.Intern(ctx, UnitType{})
}

func (UnitType) TypeID() ir.TypeID        { return UnitTypeID }
func (UnitType) Params() canon.Object     { return canon.NewObject() }
func (UnitType) Print(*ir.Printer)        {}
func (UnitType) Verify(*ir.Context) error { return nil }

func parseUnitType(st *ir.ParseState) (ir.TypePtr, error) {
	return GetUnitType(st.Ctx).Ptr(), nil
}

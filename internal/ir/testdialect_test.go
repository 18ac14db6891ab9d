package ir

import (
	"github.com/cockroachdb/errors"

	"github.com/roach88/irkit/internal/canon"
	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/location"
)

// A small dialect exercising every extension point of the core.

var (
	flagAttrID = MustAttrID("testd.flag")
	pairTypeID = MustTypeID("testd.pair")
	boxTypeID  = MustTypeID("testd.box")
	makeOpID   = MustOpID("testd.make")
	useOpID    = MustOpID("testd.use")
)

var errFlagOff = errors.New("flag is off")

var inMemory = location.InMemory

type labeled interface {
	Label() string
}

type unregistered interface {
	Nothing()
}

type flagAttr struct{ on bool }

func (*flagAttr) AttrID() AttrID { return flagAttrID }

func (a *flagAttr) Print(p *Printer) {
	if a.on {
		p.WriteString("on")
	} else {
		p.WriteString("off")
	}
}

func (a *flagAttr) Verify(*Context) error {
	if !a.on {
		return errFlagOff
	}
	return nil
}

func (a *flagAttr) Equal(other Attribute) bool {
	b, ok := other.(*flagAttr)
	return ok && a.on == b.on
}

func (a *flagAttr) Clone() Attribute {
	c := *a
	return &c
}

func (a *flagAttr) Label() string { return "flag" }
func (a *flagAttr) Nothing()      {}

func parseFlag(st *ParseState) (Attribute, error) {
	kw, err := st.In.Keyword("on", "off")
	if err != nil {
		return nil, err
	}
	return &flagAttr{on: kw == "on"}, nil
}

type pairType struct{ a, b int64 }

func (pairType) TypeID() TypeID { return pairTypeID }

func (t pairType) Params() canon.Object {
	return canon.NewObject(canon.P("a", canon.Int(t.a)), canon.P("b", canon.Int(t.b)))
}

func (t pairType) Print(p *Printer)      { p.Printf("<%d, %d>", t.a, t.b) }
func (t pairType) Verify(*Context) error { return nil }

func parsePair(st *ParseState) (TypePtr, error) {
	if err := st.In.Expect('<'); err != nil {
		return TypePtr{}, err
	}
	a := st.In.Digits()
	if err := st.In.ExpectSpaced(','); err != nil {
		return TypePtr{}, err
	}
	b := st.In.Digits()
	if err := st.In.Expect('>'); err != nil {
		return TypePtr{}, err
	}
	return Intern(st.Ctx, pairType{a: atoi(a), b: atoi(b)}).Ptr(), nil
}

func atoi(s string) int64 {
	var n int64
	for _, c := range s {
		n = n*10 + int64(c-'0')
	}
	return n
}

type boxType struct{ inner TypePtr }

func (boxType) TypeID() TypeID { return boxTypeID }

func (t boxType) Params() canon.Object {
	return canon.NewObject(canon.P("inner", canon.String(t.inner.Key())))
}

func (t boxType) Print(p *Printer) {
	p.WriteString("<")
	p.Type(t.inner)
	p.WriteString(">")
}

func (t boxType) Verify(*Context) error { return nil }

func parseBox(st *ParseState) (TypePtr, error) {
	if err := st.In.Expect('<'); err != nil {
		return TypePtr{}, err
	}
	inner, err := ParseType(st)
	if err != nil {
		return TypePtr{}, err
	}
	if err := st.In.Expect('>'); err != nil {
		return TypePtr{}, err
	}
	return Intern(st.Ctx, boxType{inner: inner}).Ptr(), nil
}

// makeOp: %x = testd.make <type>
type makeOp struct{ op *Operation }

func (o makeOp) Operation() *Operation { return o.op }

func (o makeOp) Print(p *Printer) { p.Type(o.op.Result(0).Type()) }

func (o makeOp) Verify(*Context) error {
	if o.op.NumResults() != 1 {
		return diag.VerifyErr(o.op.Loc(), "make needs one result")
	}
	return nil
}

func parseMake(st *ParseState) (Op, error) {
	ty, err := ParseType(st)
	if err != nil {
		return nil, err
	}
	return makeOp{op: NewOperation(makeOpID, []TypePtr{ty}, nil)}, nil
}

// useOp: testd.use %a, %b
type useOp struct{ op *Operation }

func (o useOp) Operation() *Operation { return o.op }
func (o useOp) Print(p *Printer)      { p.Values(o.op.Operands()) }

func (o useOp) Verify(*Context) error {
	if o.op.NumOperands() == 0 {
		return diag.VerifyErr(o.op.Loc(), "use needs operands")
	}
	return nil
}

func parseUse(st *ParseState) (Op, error) {
	var vals []Value
	for {
		v, err := st.Operand()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
		if !st.In.Consume(',') {
			break
		}
		st.In.SkipSpaces()
	}
	return useOp{op: NewOperation(useOpID, nil, vals)}, nil
}

func init() {
	RegisterAttrInterface[labeled, *flagAttr](flagAttrID)
	RegisterTypeInterface[TypeWithParams, pairType](pairTypeID)
	RegisterOpInterface[Printable, useOp](useOpID)
}

func registerTestDialect(ctx *Context) {
	d := NewDialect("testd")
	d.AddAttr(flagAttrID, parseFlag)
	d.AddType(pairTypeID, parsePair)
	d.AddType(boxTypeID, parseBox)
	d.AddOp(makeOpID, parseMake, func(o *Operation) Op { return makeOp{op: o} })
	d.AddOp(useOpID, parseUse, func(o *Operation) Op { return useOp{op: o} })
	d.Register(ctx)
}

func newTestContext() *Context {
	ctx := NewContext(WithSessionID("test-session"))
	registerTestDialect(ctx)
	return ctx
}

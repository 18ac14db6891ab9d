package llvm

import (
	"github.com/cockroachdb/errors"

	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/dialects/builtin"
	"github.com/roach88/irkit/internal/ir"
)

// Op kinds of the llvm dialect.
var (
	ReturnOpID = ir.MustOpID("llvm.return")
	AddOpID    = ir.MustOpID("llvm.add")
	SubOpID    = ir.MustOpID("llvm.sub")
	MulOpID    = ir.MustOpID("llvm.mul")
	ICmpOpID   = ir.MustOpID("llvm.icmp")
	AllocaOpID = ir.MustOpID("llvm.alloca")
)

const (
	// ICmpPredicateKey is the attribute holding an icmp's predicate.
	ICmpPredicateKey ir.Identifier = "icmp_predicate"
	// ElemTypeKey is the attribute holding an alloca's element type.
	ElemTypeKey ir.Identifier = "elem_type"
)

var (
	ErrReturnOperands = errors.New("Return must have exactly one operand")
	ErrICmpOperands   = errors.New("ICmp must have two integer operands of the same type")
	ErrICmpResult     = errors.New("ICmp result must be a signless 1 bit integer")
	ErrICmpPredicate  = errors.New("ICmp predicate missing on Op")
	ErrAllocaElemType = errors.New("Alloca element type does not match its result pointee")
)

// ReturnOp returns a value from the enclosing function:
//
//	llvm.return %v
type ReturnOp struct {
	op *ir.Operation
}

// NewReturn returns value to the caller.
func NewReturn(value ir.Value) ReturnOp {
	return ReturnOp{op: ir.NewOperation(ReturnOpID, nil, []ir.Value{value})}
}

func (r ReturnOp) Operation() *ir.Operation { return r.op }
func (ReturnOp) IsTerminator()              {}
func (r ReturnOp) Print(p *ir.Printer)      { p.Values(r.op.Operands()) }

func (r ReturnOp) Verify(*ir.Context) error {
	if err := builtin.VerifyIsTerminator(r); err != nil {
		return err
	}
	if r.op.NumOperands() != 1 {
		return diag.Verify(r.op.Loc(), ErrReturnOperands)
	}
	return nil
}

func parseReturnOp(st *ir.ParseState) (ir.Op, error) {
	v, err := st.Operand()
	if err != nil {
		return nil, err
	}
	return NewReturn(v), nil
}

// binOp is the shared shape of the integer arithmetic ops:
//
//	%r = llvm.add %a, %b <nsw>
type binOp struct {
	op *ir.Operation
}

func newBinOp(id ir.OpID, lhs, rhs ir.Value, flag OverflowFlag) binOp {
	op := ir.NewOperation(id, []ir.TypePtr{lhs.Type()}, []ir.Value{lhs, rhs})
	op.Attributes.Insert(OverflowFlagsKey, NewIntegerOverflowFlagsAttr(flag))
	return binOp{op: op}
}

func (b binOp) Operation() *ir.Operation { return b.op }
func (b binOp) LHS() ir.Value            { return b.op.Operand(0) }
func (b binOp) RHS() ir.Value            { return b.op.Operand(1) }

// ResultType implements builtin.OneResultInterface.
func (b binOp) ResultType() ir.TypePtr { return b.op.ResultType(0) }

// OperandsAndResultType implements builtin.SameOperandsAndResultType.
// It is nil for an op with neither operands nor results.
func (b binOp) OperandsAndResultType() ir.TypePtr {
	if b.op.NumResults() > 0 {
		return b.op.Result(0).Type()
	}
	if b.op.NumOperands() > 0 {
		return b.op.Operand(0).Type()
	}
	return ir.TypePtr{}
}

func (b binOp) IntegerType() (ir.TypeHandle[builtin.IntegerType], bool) {
	return ir.TypeAs[builtin.IntegerType](b.OperandsAndResultType())
}

func (b binOp) OverflowFlag() (OverflowFlag, bool) {
	a, ok := b.op.Attributes.Get(OverflowFlagsKey)
	if !ok {
		return OverflowNone, false
	}
	f, ok := ir.As[*IntegerOverflowFlagsAttr](a)
	if !ok {
		return OverflowNone, false
	}
	return f.Flag(), true
}

func (b binOp) SetOverflowFlag(flag OverflowFlag) {
	b.op.Attributes.Insert(OverflowFlagsKey, NewIntegerOverflowFlagsAttr(flag))
}

func (b binOp) Print(p *ir.Printer) {
	p.Values(b.op.Operands())
	if f, ok := b.OverflowFlag(); ok {
		p.Printf(" <%s>", f)
	}
}

func verifyIntBinArith(op ir.Op) error {
	if err := VerifyBinArithOp(op); err != nil {
		return err
	}
	if err := builtin.VerifyOneResult(op); err != nil {
		return err
	}
	if err := builtin.VerifySameOperandsAndResultType(op); err != nil {
		return err
	}
	if err := VerifyIntBinArithOp(op); err != nil {
		return err
	}
	return VerifyIntBinArithOpWithOverflowFlag(op)
}

// binOpParser parses the operands and optional flag of a binOp-shaped op.
// A missing flag parses; verification rejects it.
func binOpParser(id ir.OpID, build func(binOp) ir.Op) ir.OpParser {
	return func(st *ir.ParseState) (ir.Op, error) {
		vals, err := st.OperandList(2)
		if err != nil {
			return nil, err
		}
		op := ir.NewOperation(id, []ir.TypePtr{vals[0].Type()}, vals)

		m := st.In.Mark()
		st.In.SkipSpaces()
		if st.In.Consume('<') {
			st.In.SkipSpaces()
			f, err := parseOverflowFlag(st)
			if err != nil {
				return nil, err
			}
			if err := st.In.ExpectSpaced('>'); err != nil {
				return nil, err
			}
			op.Attributes.Insert(OverflowFlagsKey, NewIntegerOverflowFlagsAttr(f))
		} else {
			st.In.Reset(m)
		}
		return build(binOp{op: op}), nil
	}
}

// AddOp is integer addition.
type AddOp struct{ binOp }

// NewAdd builds lhs + rhs. Pass OverflowNone for no flag guarantee.
func NewAdd(lhs, rhs ir.Value, flag OverflowFlag) AddOp {
	return AddOp{newBinOp(AddOpID, lhs, rhs, flag)}
}

func (o AddOp) Verify(*ir.Context) error { return verifyIntBinArith(o) }

// SubOp is integer subtraction.
type SubOp struct{ binOp }

// NewSub builds lhs - rhs.
func NewSub(lhs, rhs ir.Value, flag OverflowFlag) SubOp {
	return SubOp{newBinOp(SubOpID, lhs, rhs, flag)}
}

func (o SubOp) Verify(*ir.Context) error { return verifyIntBinArith(o) }

// MulOp is integer multiplication.
type MulOp struct{ binOp }

// NewMul builds lhs * rhs.
func NewMul(lhs, rhs ir.Value, flag OverflowFlag) MulOp {
	return MulOp{newBinOp(MulOpID, lhs, rhs, flag)}
}

func (o MulOp) Verify(*ir.Context) error { return verifyIntBinArith(o) }

// ICmpOp compares two integers, yielding an i1:
//
//	%c = llvm.icmp %a, %b <slt>
type ICmpOp struct {
	op *ir.Operation
}

// NewICmp compares lhs and rhs with pred, producing an i1.
func NewICmp(ctx *ir.Context, pred ICmpPredicate, lhs, rhs ir.Value) ICmpOp {
	i1 := builtin.GetIntegerType(ctx, 1, builtin.Signless)
	op := ir.NewOperation(ICmpOpID, []ir.TypePtr{i1.Ptr()}, []ir.Value{lhs, rhs})
	op.Attributes.Insert(ICmpPredicateKey, NewICmpPredicateAttr(pred))
	return ICmpOp{op: op}
}

func (c ICmpOp) Operation() *ir.Operation { return c.op }
func (c ICmpOp) ResultType() ir.TypePtr   { return c.op.ResultType(0) }

// Predicate returns the comparison predicate.
func (c ICmpOp) Predicate() (ICmpPredicate, bool) {
	a, ok := c.op.Attributes.Get(ICmpPredicateKey)
	if !ok {
		return 0, false
	}
	p, ok := ir.As[*ICmpPredicateAttr](a)
	if !ok {
		return 0, false
	}
	return p.Predicate(), true
}

func (c ICmpOp) Print(p *ir.Printer) {
	p.Values(c.op.Operands())
	if pred, ok := c.Predicate(); ok {
		p.Printf(" <%s>", pred)
	}
}

func (c ICmpOp) Verify(*ir.Context) error {
	if err := builtin.VerifyOneResult(c); err != nil {
		return err
	}
	loc := c.op.Loc()
	if _, ok := c.Predicate(); !ok {
		return diag.Verify(loc, ErrICmpPredicate)
	}
	if c.op.NumOperands() != 2 {
		return diag.Verify(loc, ErrICmpOperands)
	}
	lhs, rhs := c.op.Operand(0).Type(), c.op.Operand(1).Type()
	if lhs != rhs || !ir.TypeIs[builtin.IntegerType](lhs) {
		return diag.Verify(loc, ErrICmpOperands)
	}
	res, ok := ir.TypeAs[builtin.IntegerType](c.ResultType())
	if !ok || res.Deref().Width() != 1 || res.Deref().Signedness() != builtin.Signless {
		return diag.Verify(loc, ErrICmpResult)
	}
	return nil
}

func parseICmpOp(st *ir.ParseState) (ir.Op, error) {
	vals, err := st.OperandList(2)
	if err != nil {
		return nil, err
	}
	if err := st.In.ExpectSpaced('<'); err != nil {
		return nil, err
	}
	pred, err := parseICmpPredicate(st)
	if err != nil {
		return nil, err
	}
	st.In.SkipSpaces()
	if err := st.In.Expect('>'); err != nil {
		return nil, err
	}
	return NewICmp(st.Ctx, pred, vals[0], vals[1]), nil
}

// AllocaOp reserves stack space for one value of its element type and
// yields a pointer to it:
//
//	%p = llvm.alloca <builtin.integer i32>
type AllocaOp struct {
	op *ir.Operation
}

// NewAlloca reserves stack space for one elem and returns a pointer to it.
func NewAlloca(ctx *ir.Context, elem ir.TypePtr) AllocaOp {
	ptr := GetPointerType(ctx, elem)
	op := ir.NewOperation(AllocaOpID, []ir.TypePtr{ptr.Ptr()}, nil)
	op.Attributes.Insert(ElemTypeKey, builtin.NewTypeAttr(elem))
	return AllocaOp{op: op}
}

func (a AllocaOp) Operation() *ir.Operation { return a.op }
func (a AllocaOp) ResultType() ir.TypePtr   { return a.op.ResultType(0) }

// ResultPointee implements PointerTypeResult. It is nil when the result is
// not a pointer.
func (a AllocaOp) ResultPointee() ir.TypePtr {
	ptr, ok := ir.TypeAs[PointerType](a.ResultType())
	if !ok {
		return ir.TypePtr{}
	}
	return ptr.Deref().Pointee()
}

// ElemType returns the allocated type.
func (a AllocaOp) ElemType() (ir.TypePtr, bool) {
	attr, ok := a.op.Attributes.Get(ElemTypeKey)
	if !ok {
		return ir.TypePtr{}, false
	}
	t, ok := ir.As[*builtin.TypeAttr](attr)
	if !ok {
		return ir.TypePtr{}, false
	}
	return t.Type(), true
}

func (a AllocaOp) Print(p *ir.Printer) {
	if elem, ok := a.ElemType(); ok {
		p.WriteString("<")
		p.Type(elem)
		p.WriteString(">")
	}
}

func (a AllocaOp) Verify(*ir.Context) error {
	if err := builtin.VerifyOneResult(a); err != nil {
		return err
	}
	if err := VerifyPointerTypeResult(a); err != nil {
		return err
	}
	if elem, ok := a.ElemType(); !ok || elem != a.ResultPointee() {
		return diag.Verify(a.op.Loc(), ErrAllocaElemType)
	}
	return nil
}

func parseAllocaOp(st *ir.ParseState) (ir.Op, error) {
	if err := st.In.Expect('<'); err != nil {
		return nil, err
	}
	st.In.SkipSpaces()
	elem, err := ir.ParseType(st)
	if err != nil {
		return nil, err
	}
	st.In.SkipSpaces()
	if err := st.In.Expect('>'); err != nil {
		return nil, err
	}
	return NewAlloca(st.Ctx, elem), nil
}

func buildAdd(b binOp) ir.Op { return AddOp{b} }
func buildSub(b binOp) ir.Op { return SubOp{b} }
func buildMul(b binOp) ir.Op { return MulOp{b} }

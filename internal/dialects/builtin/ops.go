package builtin

import (
	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/ir"
	"github.com/roach88/irkit/internal/location"
)

// ConstantOpID names the constant op kind.
var ConstantOpID = ir.MustOpID("builtin.constant")

// ConstantValueKey is the attribute holding a constant's value.
const ConstantValueKey ir.Identifier = "value"

// ConstantOp materializes a typed attribute as an SSA value:
//
//	%c = builtin.constant builtin.integer <3: i32>
type ConstantOp struct {
	op *ir.Operation
}

// NewConstant builds a constant whose result type is value's type.
func NewConstant(value ir.Attribute) (ConstantOp, error) {
	if value == nil {
		return ConstantOp{}, diag.ArgErr(location.Unknown, "Constant value is nil")
	}
	typed, ok := ir.AttrCast[TypedAttrInterface](value)
	if !ok {
		return ConstantOp{}, diag.ArgErr(location.Unknown, "Constant value must be a typed attribute, got %s", value.AttrID())
	}
	op := ir.NewOperation(ConstantOpID, []ir.TypePtr{typed.Type()}, nil)
	op.Attributes.Insert(ConstantValueKey, value)
	return ConstantOp{op: op}, nil
}

func (c ConstantOp) Operation() *ir.Operation { return c.op }

// Value returns the constant's value attribute.
func (c ConstantOp) Value() (ir.Attribute, bool) {
	return c.op.Attributes.Get(ConstantValueKey)
}

// ResultType implements OneResultInterface.
func (c ConstantOp) ResultType() ir.TypePtr { return c.op.ResultType(0) }

func (c ConstantOp) Print(p *ir.Printer) {
	if v, ok := c.Value(); ok {
		p.Attr(v)
	}
}

func (c ConstantOp) Verify(*ir.Context) error {
	if err := VerifyOneResult(c); err != nil {
		return err
	}
	v, ok := c.Value()
	if !ok {
		return diag.VerifyErr(c.op.Loc(), "Constant has no %s attribute", ConstantValueKey)
	}
	typed, ok := ir.AttrCast[TypedAttrInterface](v)
	if !ok {
		return diag.VerifyErr(c.op.Loc(), "Constant value %s is not typed", v.AttrID())
	}
	if typed.Type() != c.ResultType() {
		return diag.VerifyErr(c.op.Loc(), "Constant value type %s does not match result type %s", typed.Type(), c.ResultType())
	}
	return nil
}

func parseConstantOp(st *ir.ParseState) (ir.Op, error) {
	loc := st.In.Loc()
	v, err := ir.ParseAttr(st)
	if err != nil {
		return nil, err
	}
	c, err := NewConstant(v)
	if err != nil {
		return nil, diag.InputErr(loc, "Constant value must be a typed attribute, got %s", v.AttrID())
	}
	return c, nil
}

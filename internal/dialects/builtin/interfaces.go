package builtin

import (
	"github.com/cockroachdb/errors"

	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/ir"
)

// TypedAttrInterface is an attribute that carries a type.
type TypedAttrInterface interface {
	ir.Attribute
	Type() ir.TypePtr
}

// OneResultInterface is an op with exactly one result.
type OneResultInterface interface {
	ir.Op
	ResultType() ir.TypePtr
}

// SameOperandsAndResultType is an op whose operands and results all share
// one type.
type SameOperandsAndResultType interface {
	ir.Op
	OperandsAndResultType() ir.TypePtr
}

// IsTerminatorInterface marks ops that end a block.
type IsTerminatorInterface interface {
	ir.Op
	IsTerminator()
}

var (
	ErrOneResult                 = errors.New("Op must have exactly one result")
	ErrSameOperandsAndResultType = errors.New("Op must have the same type for all operands and results")
	ErrTerminatorResults         = errors.New("Terminator Op must not have results")
)

// VerifyOneResult checks the OneResultInterface invariant.
func VerifyOneResult(op ir.Op) error {
	o := op.Operation()
	if o.NumResults() != 1 {
		return diag.Verify(o.Loc(), ErrOneResult)
	}
	return nil
}

// VerifySameOperandsAndResultType checks that every operand and result has
// the same type. An op with neither passes trivially.
func VerifySameOperandsAndResultType(op ir.Op) error {
	o := op.Operation()
	var types []ir.TypePtr
	for _, v := range o.Operands() {
		types = append(types, v.Type())
	}
	for _, r := range o.Results() {
		types = append(types, r.Type())
	}
	for _, t := range types {
		if t != types[0] {
			return diag.Verify(o.Loc(), ErrSameOperandsAndResultType)
		}
	}
	return nil
}

// VerifyIsTerminator checks that a terminator defines no values.
func VerifyIsTerminator(op ir.Op) error {
	o := op.Operation()
	if o.NumResults() != 0 {
		return diag.Verify(o.Loc(), ErrTerminatorResults)
	}
	return nil
}

func init() {
	ir.RegisterAttrInterface[TypedAttrInterface, *IntegerAttr](IntegerAttrID)
	ir.RegisterAttrInterface[TypedAttrInterface, *TypeAttr](TypeAttrID)
	ir.RegisterOpInterface[OneResultInterface, ConstantOp](ConstantOpID)
}

package llvm

import (
	"github.com/cockroachdb/errors"

	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/dialects/builtin"
	"github.com/roach88/irkit/internal/ir"
)

// BinArithOp is a binary arithmetic op: two operands, one result, all of
// one type.
type BinArithOp interface {
	builtin.SameOperandsAndResultType
	LHS() ir.Value
	RHS() ir.Value
}

// IntBinArithOp is a BinArithOp over signless integers.
type IntBinArithOp interface {
	BinArithOp
	IntegerType() (ir.TypeHandle[builtin.IntegerType], bool)
}

// IntBinArithOpWithOverflowFlag is an IntBinArithOp carrying an
// IntegerOverflowFlagsAttr under OverflowFlagsKey.
type IntBinArithOpWithOverflowFlag interface {
	IntBinArithOp
	OverflowFlag() (OverflowFlag, bool)
	SetOverflowFlag(OverflowFlag)
}

// PointerTypeResult is an op with a single llvm.ptr result.
type PointerTypeResult interface {
	builtin.OneResultInterface
	ResultPointee() ir.TypePtr
}

// OverflowFlagsKey is the attribute holding an op's overflow flag.
const OverflowFlagsKey ir.Identifier = "integer_overflow_flags"

var (
	ErrBinArithOp                    = errors.New("Binary Arithmetic Op must have exactly two operands and one result")
	ErrIntBinArithOp                 = errors.New("Integer binary arithmetic Op can only have signless integer result/operand type")
	ErrIntBinArithOpWithOverflowFlag = errors.New("IntegerOverflowFlag missing on Op")
	ErrPointerTypeResult             = errors.New("Result must be a pointer type, but is not")
)

// VerifyBinArithOp checks the operand and result counts.
func VerifyBinArithOp(op ir.Op) error {
	o := op.Operation()
	if o.NumResults() != 1 || o.NumOperands() != 2 {
		return diag.Verify(o.Loc(), ErrBinArithOp)
	}
	return nil
}

// VerifyIntBinArithOp checks that the shared operand and result type is a
// signless integer.
func VerifyIntBinArithOp(op ir.Op) error {
	o := op.Operation()
	same, ok := ir.OpCast[builtin.SameOperandsAndResultType](op)
	if !ok {
		return diag.Verify(o.Loc(), ErrIntBinArithOp)
	}
	ty, ok := ir.TypeAs[builtin.IntegerType](same.OperandsAndResultType())
	if !ok || ty.Deref().Signedness() != builtin.Signless {
		return diag.Verify(o.Loc(), ErrIntBinArithOp)
	}
	return nil
}

// VerifyIntBinArithOpWithOverflowFlag checks that the overflow flag is set.
func VerifyIntBinArithOpWithOverflowFlag(op ir.Op) error {
	o := op.Operation()
	a, ok := o.Attributes.Get(OverflowFlagsKey)
	if !ok || !ir.Is[*IntegerOverflowFlagsAttr](a) {
		return diag.Verify(o.Loc(), ErrIntBinArithOpWithOverflowFlag)
	}
	return nil
}

// VerifyPointerTypeResult checks that the single result is a pointer.
func VerifyPointerTypeResult(op ir.Op) error {
	o := op.Operation()
	one, ok := ir.OpCast[builtin.OneResultInterface](op)
	if !ok || !ir.TypeIs[PointerType](one.ResultType()) {
		return diag.Verify(o.Loc(), ErrPointerTypeResult)
	}
	return nil
}

func registerIntBinArith[T IntBinArithOpWithOverflowFlag](id ir.OpID) {
	ir.RegisterOpInterface[builtin.OneResultInterface, T](id)
	ir.RegisterOpInterface[builtin.SameOperandsAndResultType, T](id)
	ir.RegisterOpInterface[BinArithOp, T](id)
	ir.RegisterOpInterface[IntBinArithOp, T](id)
	ir.RegisterOpInterface[IntBinArithOpWithOverflowFlag, T](id)
}

func init() {
	registerIntBinArith[AddOp](AddOpID)
	registerIntBinArith[SubOp](SubOpID)
	registerIntBinArith[MulOp](MulOpID)

	ir.RegisterOpInterface[builtin.IsTerminatorInterface, ReturnOp](ReturnOpID)
	ir.RegisterOpInterface[builtin.OneResultInterface, ICmpOp](ICmpOpID)
	ir.RegisterOpInterface[builtin.OneResultInterface, AllocaOp](AllocaOpID)
	ir.RegisterOpInterface[PointerTypeResult, AllocaOp](AllocaOpID)
}

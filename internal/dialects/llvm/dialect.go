// Package llvm is a small LLVM-flavored dialect layered on builtin: a
// pointer type, integer arithmetic and comparison, stack allocation and
// return.
package llvm

import (
	"github.com/roach88/irkit/internal/dialects/builtin"
	"github.com/roach88/irkit/internal/ir"
)

// Name is the dialect's name.
const Name ir.DialectName = "llvm"

// Register installs builtin and then the llvm dialect into ctx.
func Register(ctx *ir.Context) {
	builtin.Register(ctx)

	d := ir.NewDialect(Name)

	d.AddType(PointerTypeID, parsePointerType)

	d.AddAttr(IntegerOverflowFlagsAttrID, parseIntegerOverflowFlagsAttr)
	d.AddAttr(ICmpPredicateAttrID, parseICmpPredicateAttr)
	d.AddAttr(GepIndicesAttrID, parseGepIndicesAttr)

	d.AddOp(ReturnOpID, parseReturnOp, func(op *ir.Operation) ir.Op { return ReturnOp{op: op} })
	d.AddOp(AddOpID, binOpParser(AddOpID, buildAdd), func(op *ir.Operation) ir.Op { return buildAdd(binOp{op: op}) })
	d.AddOp(SubOpID, binOpParser(SubOpID, buildSub), func(op *ir.Operation) ir.Op { return buildSub(binOp{op: op}) })
	d.AddOp(MulOpID, binOpParser(MulOpID, buildMul), func(op *ir.Operation) ir.Op { return buildMul(binOp{op: op}) })
	d.AddOp(ICmpOpID, parseICmpOp, func(op *ir.Operation) ir.Op { return ICmpOp{op: op} })
	d.AddOp(AllocaOpID, parseAllocaOp, func(op *ir.Operation) ir.Op { return AllocaOp{op: op} })

	d.Register(ctx)
}

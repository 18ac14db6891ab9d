// Package builtin is the dialect every other dialect builds on: integer,
// function and unit types, the common attribute kinds, and the op
// interfaces shared across dialects.
package builtin

import "github.com/roach88/irkit/internal/ir"

// Name is the dialect's name.
const Name ir.DialectName = "builtin"

// Register installs the builtin dialect into ctx. Registering twice is
// harmless.
func Register(ctx *ir.Context) {
	d := ir.NewDialect(Name)

	d.AddType(IntegerTypeID, parseIntegerType)
	d.AddType(FunctionTypeID, parseFunctionType)
	d.AddType(UnitTypeID, parseUnitType)

	d.AddAttr(IdentifierAttrID, parseIdentifierAttr)
	d.AddAttr(StringAttrID, parseStringAttr)
	d.AddAttr(IntegerAttrID, parseIntegerAttr)
	d.AddAttr(DictAttrID, parseDictAttr)
	d.AddAttr(VecAttrID, parseVecAttr)
	d.AddAttr(UnitAttrID, parseUnitAttr)
	d.AddAttr(TypeAttrID, parseTypeAttr)

	d.AddOp(ConstantOpID, parseConstantOp, func(op *ir.Operation) ir.Op { return ConstantOp{op: op} })

	d.Register(ctx)
}

package llvm

import (
	"github.com/roach88/irkit/internal/canon"
	"github.com/roach88/irkit/internal/ir"
)

// PointerTypeID names the pointer type kind.
var PointerTypeID = ir.MustTypeID("llvm.ptr")

// PointerType is a typed pointer, printed llvm.ptr <builtin.integer i32>.
type PointerType struct {
	pointee ir.TypePtr
}

// GetPointerType interns a pointer to pointee.
func GetPointerType(ctx *ir.Context, pointee ir.TypePtr) ir.TypeHandle[PointerType] {
	return ir.Intern(ctx, PointerType{pointee: pointee})
}

func (PointerType) TypeID() ir.TypeID { return PointerTypeID }

// Pointee returns the pointed-to type.
func (t PointerType) Pointee() ir.TypePtr { return t.pointee }

func (t PointerType) Params() canon.Object {
	return canon.NewObject(canon.P("pointee", canon.String(t.pointee.Key())))
}

func (t PointerType) Print(p *ir.Printer) {
	p.WriteString("<")
	p.Type(t.pointee)
	p.WriteString(">")
}

func (t PointerType) Verify(*ir.Context) error { return t.pointee.Verify() }

func parsePointerType(st *ir.ParseState) (ir.TypePtr, error) {
	if err := st.In.Expect('<'); err != nil {
		return ir.TypePtr{}, err
	}
	st.In.SkipSpaces()
	pointee, err := ir.ParseType(st)
	if err != nil {
		return ir.TypePtr{}, err
	}
	st.In.SkipSpaces()
	if err := st.In.Expect('>'); err != nil {
		return ir.TypePtr{}, err
	}
	return GetPointerType(st.Ctx, pointee).Ptr(), nil
}

package ir

import (
	"github.com/roach88/irkit/internal/location"
)

// Value is something an operation can take as an operand: a result slot of
// another operation or an external value supplied by the host. An operand is
// a use-def edge, never ownership.
type Value interface {
	Type() TypePtr
	isValue()
}

// OpResult is one result slot of an Operation.
type OpResult struct {
	op    *Operation
	index int
	ty    TypePtr
	name  string
}

func (*OpResult) isValue() {}

// Type returns the result's type.
func (r *OpResult) Type() TypePtr { return r.ty }

// Owner returns the operation defining r.
func (r *OpResult) Owner() *Operation { return r.op }

// Index returns r's position among its owner's results.
func (r *OpResult) Index() int { return r.index }

// Name returns the textual name r was parsed with, if any.
func (r *OpResult) Name() string { return r.name }

// SetName sets the name r prints with.
func (r *OpResult) SetName(name string) { r.name = name }

// ExternalValue is an operand defined outside the operations being built,
// such as a function argument.
type ExternalValue struct {
	name Identifier
	ty   TypePtr
}

// NewExternalValue returns an external value called name.
func NewExternalValue(name Identifier, ty TypePtr) *ExternalValue {
	return &ExternalValue{name: name, ty: ty}
}

func (*ExternalValue) isValue() {}

// Type returns the value's type.
func (v *ExternalValue) Type() TypePtr { return v.ty }

// Name returns the value's name.
func (v *ExternalValue) Name() Identifier { return v.name }

// Operation is the generic IR node shared by every op kind.
type Operation struct {
	id       OpID
	loc      location.Location
	operands []Value
	results  []*OpResult

	Attributes AttributeDict
}

// NewOperation builds an operation of kind id. Nothing is validated.
func NewOperation(id OpID, resultTypes []TypePtr, operands []Value) *Operation {
	op := &Operation{id: id, operands: append([]Value(nil), operands...)}
	op.results = make([]*OpResult, len(resultTypes))
	for i, ty := range resultTypes {
		op.results[i] = &OpResult{op: op, index: i, ty: ty}
	}
	return op
}

// ID returns the op kind.
func (o *Operation) ID() OpID { return o.id }

// Loc returns where the op was parsed from.
func (o *Operation) Loc() location.Location { return o.loc }

// SetLoc records where the op came from.
func (o *Operation) SetLoc(loc location.Location) { o.loc = loc }

// NumOperands returns the operand count.
func (o *Operation) NumOperands() int { return len(o.operands) }

// Operand returns operand i.
func (o *Operation) Operand(i int) Value { return o.operands[i] }

// Operands returns a copy of the operand list.
func (o *Operation) Operands() []Value { return append([]Value(nil), o.operands...) }

// SetOperand replaces operand i.
func (o *Operation) SetOperand(i int, v Value) { o.operands[i] = v }

// NumResults returns the result count.
func (o *Operation) NumResults() int { return len(o.results) }

// Result returns result i.
func (o *Operation) Result(i int) *OpResult { return o.results[i] }

// ResultType returns the type of result i, or the zero TypePtr when o has
// no result i.
func (o *Operation) ResultType(i int) TypePtr {
	if i < 0 || i >= len(o.results) {
		return TypePtr{}
	}
	return o.results[i].ty
}

// Results returns a copy of the result list.
func (o *Operation) Results() []*OpResult { return append([]*OpResult(nil), o.results...) }

// Op is the concrete view of an Operation of some registered kind.
type Op interface {
	Operation() *Operation
	// Print writes the payload that follows the qualified identifier.
	Print(p *Printer)
	// Verify checks the kind's own invariants. Concrete kinds call the
	// checks of every capability interface they want enforced.
	Verify(ctx *Context) error
}

// OpEqual reports whether a and b are views of the same Operation. Ops have
// identity, not structural equality: results are use-def targets, so two
// structurally identical ops are still different ops.
func OpEqual(a, b Op) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Operation() == b.Operation()
}

// Clone returns a new operation of the same kind with the same location,
// operands and result types and a deep copy of the attributes. The clone's
// results are fresh values without names.
func (o *Operation) Clone() *Operation {
	types := make([]TypePtr, len(o.results))
	for i, r := range o.results {
		types[i] = r.ty
	}
	c := NewOperation(o.id, types, o.operands)
	c.loc = o.loc
	c.Attributes = o.Attributes.Clone()
	return c
}

// CloneOp clones op and rebuilds its concrete view. It fails when op's kind
// is not registered in ctx.
func CloneOp(ctx *Context, op Op) (Op, bool) {
	return ctx.OpFromOperation(op.Operation().Clone())
}

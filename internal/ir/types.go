package ir

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/roach88/irkit/internal/canon"
	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/location"
	"github.com/roach88/irkit/internal/logging"
)

// Type is a dialect-defined type kind. Types are interned: build a value and
// pass it to Intern, then refer to it through the returned handle.
type Type interface {
	TypeID() TypeID
	// Params returns the structural parameters that distinguish two
	// instances of the same kind. Nested types appear by TypePtr.Key.
	Params() canon.Object
	// Print writes the payload that follows the qualified identifier.
	Print(p *Printer)
	Verify(ctx *Context) error
}

type typeEntry struct {
	ctx   *Context
	ty    Type
	key   string
	index int
}

// TypePtr is a non-owning handle to an interned type. Two TypePtrs are equal
// (==) exactly when they refer to the same interned instance. The zero value
// refers to nothing.
type TypePtr struct {
	e *typeEntry
}

// IsNil reports whether p refers to nothing.
func (p TypePtr) IsNil() bool { return p.e == nil }

// Deref returns the interned type, or nil for the zero TypePtr.
func (p TypePtr) Deref() Type {
	if p.e == nil {
		return nil
	}
	return p.e.ty
}

// TypeID returns the kind of the referenced type. It is the zero TypeID for
// the zero TypePtr.
func (p TypePtr) TypeID() TypeID {
	if p.e == nil {
		return TypeID{}
	}
	return p.e.ty.TypeID()
}

// Key returns the canonical interning key of the referenced type. The zero
// TypePtr has the empty key.
func (p TypePtr) Key() string {
	if p.e == nil {
		return ""
	}
	return p.e.key
}

// Context returns the context that owns the referenced type.
func (p TypePtr) Context() *Context {
	if p.e == nil {
		return nil
	}
	return p.e.ctx
}

// ErrNilType is the cause when a type handle that refers to nothing is
// verified.
var ErrNilType = errors.New("Type is nil")

// Verify verifies the referenced type. The zero TypePtr fails verification.
func (p TypePtr) Verify() error {
	if p.e == nil {
		return diag.Verify(location.Unknown, ErrNilType)
	}
	return p.e.ty.Verify(p.e.ctx)
}

func (p TypePtr) String() string {
	if p.e == nil {
		return "<nil type>"
	}
	return PrintType(p.e.ctx, p)
}

// TypeHandle is a TypePtr whose concrete kind is known statically.
type TypeHandle[T Type] struct {
	ptr TypePtr
}

// Deref returns the interned type as its concrete kind, or the zero T for
// a handle that refers to nothing.
func (h TypeHandle[T]) Deref() T {
	if h.ptr.IsNil() {
		var zero T
		return zero
	}
	return h.ptr.e.ty.(T)
}

// Ptr erases the concrete kind.
func (h TypeHandle[T]) Ptr() TypePtr { return h.ptr }

// IsNil reports whether h refers to nothing.
func (h TypeHandle[T]) IsNil() bool { return h.ptr.IsNil() }

func (h TypeHandle[T]) String() string { return h.ptr.String() }

// TypeIs reports whether p refers to a type of concrete kind T.
func TypeIs[T Type](p TypePtr) bool {
	if p.IsNil() {
		return false
	}
	_, ok := p.e.ty.(T)
	return ok
}

// TypeAs recovers the concrete kind of p.
func TypeAs[T Type](p TypePtr) (TypeHandle[T], bool) {
	if !TypeIs[T](p) {
		return TypeHandle[T]{}, false
	}
	return TypeHandle[T]{ptr: p}, true
}

func typeKey(t Type) string {
	return canon.MustKey(canon.DomainType, canon.NewObject(
		canon.P("kind", canon.String(t.TypeID().String())),
		canon.P("params", t.Params()),
	))
}

// Intern returns the context's canonical instance of t. Structurally equal
// requests against the same context return identical handles; the first
// request's value is the one kept.
func Intern[T Type](ctx *Context, t T) TypeHandle[T] {
	key := typeKey(t)
	if e, ok := ctx.typeIndex[key]; ok {
		if _, same := e.ty.(T); !same {
			panic(fmt.Sprintf("ir: type %s interned as %T and %T", t.TypeID(), e.ty, t))
		}
		return TypeHandle[T]{ptr: TypePtr{e: e}}
	}

	e := &typeEntry{ctx: ctx, ty: t, key: key, index: len(ctx.types)}
	ctx.types = append(ctx.types, e)
	ctx.typeIndex[key] = e
	ctx.log.Debug("interned type",
		zap.String(logging.FieldKind, t.TypeID().String()),
		zap.String(logging.FieldKey, key[:12]))
	return TypeHandle[T]{ptr: TypePtr{e: e}}
}

// Types returns every interned type in interning order.
func (c *Context) Types() []TypePtr {
	out := make([]TypePtr, len(c.types))
	for i, e := range c.types {
		out[i] = TypePtr{e: e}
	}
	return out
}

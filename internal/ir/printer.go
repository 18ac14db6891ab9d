package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// valueNames numbers unnamed results. Numbers already taken by explicit
// result names are skipped so the output parses back.
type valueNames struct {
	names map[*OpResult]string
	used  map[string]bool
	next  int
}

func (v *valueNames) reserve(o *Operation) {
	for _, r := range o.results {
		if r.name != "" {
			v.used[r.name] = true
		}
	}
}

// Printer accumulates textual IR. Kinds write their payload through it and
// use Attr, Type and Value for nested objects.
type Printer struct {
	ctx    *Context
	b      strings.Builder
	values *valueNames
}

// NewPrinter returns an empty printer for objects owned by ctx.
func NewPrinter(ctx *Context) *Printer {
	return &Printer{ctx: ctx, values: &valueNames{
		names: make(map[*OpResult]string),
		used:  make(map[string]bool),
	}}
}

func (p *Printer) fork() *Printer {
	return &Printer{ctx: p.ctx, values: p.values}
}

// Ctx returns the context being printed against.
func (p *Printer) Ctx() *Context { return p.ctx }

// WriteString appends s.
func (p *Printer) WriteString(s string) { p.b.WriteString(s) }

// Printf appends formatted text.
func (p *Printer) Printf(format string, args ...any) { fmt.Fprintf(&p.b, format, args...) }

// String returns everything printed so far.
func (p *Printer) String() string { return p.b.String() }

// qualified writes id, then a space and the payload unless it is empty.
func (p *Printer) qualified(id string, payload func(*Printer)) {
	p.b.WriteString(id)
	sub := p.fork()
	payload(sub)
	if s := sub.String(); s != "" {
		p.b.WriteByte(' ')
		p.b.WriteString(s)
	}
}

// Attr writes a's full textual form.
func (p *Printer) Attr(a Attribute) {
	p.qualified(a.AttrID().String(), a.Print)
}

// Type writes t's full textual form. The zero TypePtr prints as
// "<nil type>", which does not parse.
func (p *Printer) Type(t TypePtr) {
	if t.IsNil() {
		p.b.WriteString("<nil type>")
		return
	}
	ty := t.Deref()
	p.qualified(ty.TypeID().String(), ty.Print)
}

// Value writes a reference to v, naming unnamed results in print order.
func (p *Printer) Value(v Value) {
	p.b.WriteByte('%')
	switch v := v.(type) {
	case *ExternalValue:
		p.b.WriteString(string(v.name))
	case *OpResult:
		p.b.WriteString(p.resultName(v))
	default:
		p.b.WriteString("?")
	}
}

func (p *Printer) resultName(r *OpResult) string {
	if r.name != "" {
		return r.name
	}
	if n, ok := p.values.names[r]; ok {
		return n
	}
	n := strconv.Itoa(p.values.next)
	for p.values.used[n] {
		p.values.next++
		n = strconv.Itoa(p.values.next)
	}
	p.values.next++
	p.values.names[r] = n
	return n
}

// Values writes vs separated by ", ".
func (p *Printer) Values(vs []Value) {
	for i, v := range vs {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.Value(v)
	}
}

// Op writes one op statement: result names, qualified identifier, payload.
func (p *Printer) Op(op Op) {
	o := op.Operation()
	p.values.reserve(o)
	for i, r := range o.results {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.Value(r)
	}
	if len(o.results) > 0 {
		p.b.WriteString(" = ")
	}
	p.qualified(o.id.String(), op.Print)
}

// PrintAttr renders a standalone attribute.
func PrintAttr(ctx *Context, a Attribute) string {
	p := NewPrinter(ctx)
	p.Attr(a)
	return p.String()
}

// PrintType renders a standalone type.
func PrintType(ctx *Context, t TypePtr) string {
	p := NewPrinter(ctx)
	p.Type(t)
	return p.String()
}

// PrintOp renders a single op statement.
func PrintOp(ctx *Context, op Op) string {
	p := NewPrinter(ctx)
	p.Op(op)
	return p.String()
}

// PrintOps renders ops one per line, sharing result numbering. Unnamed
// results never take a number that some op in ops uses as a name.
func PrintOps(ctx *Context, ops []Op) string {
	p := NewPrinter(ctx)
	for _, op := range ops {
		p.values.reserve(op.Operation())
	}
	for _, op := range ops {
		p.Op(op)
		p.b.WriteByte('\n')
	}
	return p.String()
}

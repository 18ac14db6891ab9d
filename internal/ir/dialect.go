package ir

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/logging"
)

// Dialect groups related op, type and attribute kinds under one name.
//
// A Dialect is assembled with AddOp, AddType and AddAttr and then installed
// with Register. Adding a kind whose identifier names a different dialect is
// a bug in the dialect definition and panics.
type Dialect struct {
	name  DialectName
	ops   []OpID
	types []TypeID
	attrs []AttrID

	opEntries   map[OpID]opEntry
	typeParsers map[TypeID]TypeParser
	attrParsers map[AttrID]AttrParser
}

// NewDialect returns an empty, unregistered dialect.
func NewDialect(name DialectName) *Dialect {
	return &Dialect{
		name:        name,
		opEntries:   make(map[OpID]opEntry),
		typeParsers: make(map[TypeID]TypeParser),
		attrParsers: make(map[AttrID]AttrParser),
	}
}

// Name returns the dialect's name.
func (d *Dialect) Name() DialectName { return d.name }

// Ops lists the op kinds in the order they were added.
func (d *Dialect) Ops() []OpID { return append([]OpID(nil), d.ops...) }

// Types lists the type kinds in the order they were added.
func (d *Dialect) Types() []TypeID { return append([]TypeID(nil), d.types...) }

// Attrs lists the attribute kinds in the order they were added.
func (d *Dialect) Attrs() []AttrID { return append([]AttrID(nil), d.attrs...) }

func (d *Dialect) mustOwn(kind string, owner DialectName, id fmt.Stringer) {
	if owner != d.name {
		panic(fmt.Sprintf("ir: %s %s added to dialect %s", kind, id, d.name))
	}
}

// AddOp adds an op kind with its parser and concrete-view builder.
func (d *Dialect) AddOp(id OpID, parse OpParser, build OpBuilder) {
	d.mustOwn("op", id.Dialect, id)
	d.ops = append(d.ops, id)
	d.opEntries[id] = opEntry{parse: parse, build: build}
}

// AddType adds a type kind with its payload parser.
func (d *Dialect) AddType(id TypeID, parse TypeParser) {
	d.mustOwn("type", id.Dialect, id)
	d.types = append(d.types, id)
	d.typeParsers[id] = parse
}

// AddAttr adds an attribute kind with its payload parser.
func (d *Dialect) AddAttr(id AttrID, parse AttrParser) {
	d.mustOwn("attribute", id.Dialect, id)
	d.attrs = append(d.attrs, id)
	d.attrParsers[id] = parse
}

// Register installs d into ctx unless a dialect with the same name is
// already there, in which case d is dropped without error.
func (d *Dialect) Register(ctx *Context) {
	if _, ok := ctx.dialects[d.name]; ok {
		ctx.log.Debug("dialect already registered", zap.String(logging.FieldDialect, d.name.String()))
		return
	}
	ctx.dialects[d.name] = d

	for id, e := range d.opEntries {
		if _, ok := ctx.ops[id]; !ok {
			ctx.ops[id] = e
		}
	}
	for id, p := range d.typeParsers {
		if _, ok := ctx.typeParsers[id]; !ok {
			ctx.typeParsers[id] = p
		}
	}
	for id, p := range d.attrParsers {
		if _, ok := ctx.attrParsers[id]; !ok {
			ctx.attrParsers[id] = p
		}
	}

	ctx.log.Debug("registered dialect",
		zap.String(logging.FieldDialect, d.name.String()),
		zap.Int(logging.FieldCount, len(d.ops)+len(d.types)+len(d.attrs)))
}

// ParseDialectName reads an identifier and checks that it names a registered
// dialect. Failure is reported at the identifier's first character.
func ParseDialectName(st *ParseState) (DialectName, error) {
	loc := st.In.Loc()
	name, err := st.In.Identifier()
	if err != nil {
		return "", err
	}
	if !st.Ctx.HasDialect(DialectName(name)) {
		return "", diag.InputErr(loc, "Unregistered dialect %s", name)
	}
	return DialectName(name), nil
}

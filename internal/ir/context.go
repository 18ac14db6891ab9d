package ir

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roach88/irkit/internal/logging"
)

// AttrParser parses an attribute payload, the text after "dialect.name".
type AttrParser func(st *ParseState) (Attribute, error)

// TypeParser parses a type payload and returns the interned type.
type TypeParser func(st *ParseState) (TypePtr, error)

// OpParser parses an op payload. Result names, the qualified identifier and
// the op location are handled by ParseOp.
type OpParser func(st *ParseState) (Op, error)

// OpBuilder wraps a generic Operation into its concrete Op view.
type OpBuilder func(op *Operation) Op

type opEntry struct {
	parse OpParser
	build OpBuilder
}

// Context is the arena for one compilation session. It owns the registered
// dialects, the per-kind parser tables they install, and every interned type.
type Context struct {
	session string
	log     *zap.Logger

	dialects map[DialectName]*Dialect

	attrParsers map[AttrID]AttrParser
	typeParsers map[TypeID]TypeParser
	ops         map[OpID]opEntry

	types     []*typeEntry
	typeIndex map[string]*typeEntry
}

// Option configures a Context.
type Option func(*Context)

// WithLogger routes the context's debug logging to log.
func WithLogger(log *zap.Logger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// WithSessionID overrides the generated session id, for deterministic logs.
func WithSessionID(id string) Option {
	return func(c *Context) { c.session = id }
}

// NewContext returns an empty Context with no dialects registered.
func NewContext(opts ...Option) *Context {
	c := &Context{
		session:     uuid.Must(uuid.NewV7()).String(),
		log:         logging.Nop(),
		dialects:    make(map[DialectName]*Dialect),
		attrParsers: make(map[AttrID]AttrParser),
		typeParsers: make(map[TypeID]TypeParser),
		ops:         make(map[OpID]opEntry),
		typeIndex:   make(map[string]*typeEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String(logging.FieldSession, c.session))
	return c
}

// SessionID identifies this context in logs.
func (c *Context) SessionID() string { return c.session }

// Logger returns the context's logger, tagged with the session id.
func (c *Context) Logger() *zap.Logger { return c.log }

// Dialect returns the registered dialect called name.
func (c *Context) Dialect(name DialectName) (*Dialect, bool) {
	d, ok := c.dialects[name]
	return d, ok
}

// HasDialect reports whether a dialect called name is registered.
func (c *Context) HasDialect(name DialectName) bool {
	_, ok := c.dialects[name]
	return ok
}

// DialectNames returns the registered dialect names in sorted order.
func (c *Context) DialectNames() []DialectName {
	names := make([]DialectName, 0, len(c.dialects))
	for n := range c.dialects {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// NumTypes returns how many distinct types have been interned.
func (c *Context) NumTypes() int { return len(c.types) }

// OpFromOperation returns the concrete Op view of a generic operation.
// It fails when the op kind was never registered in this context.
func (c *Context) OpFromOperation(op *Operation) (Op, bool) {
	e, ok := c.ops[op.ID()]
	if !ok {
		return nil, false
	}
	return e.build(op), true
}

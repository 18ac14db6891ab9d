package ir

import (
	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/irfmt"
	"github.com/roach88/irkit/internal/location"
)

// ParseState is threaded through every sub-parser: the context, so nested
// parsers can intern types, and the stream being read. It also tracks the
// value names visible to op operands.
type ParseState struct {
	Ctx *Context
	In  *irfmt.Stream

	values map[string]Value
}

// NewParseState starts parsing input from src.
func NewParseState(ctx *Context, src location.Source, input string) *ParseState {
	return &ParseState{
		Ctx:    ctx,
		In:     irfmt.NewStream(src, input),
		values: make(map[string]Value),
	}
}

// Bind makes external values referenceable as %name.
func (st *ParseState) Bind(vals ...*ExternalValue) {
	for _, v := range vals {
		st.values[string(v.name)] = v
	}
}

// Lookup returns the value currently bound to name.
func (st *ParseState) Lookup(name string) (Value, bool) {
	v, ok := st.values[name]
	return v, ok
}

// Operand reads %name and resolves it.
func (st *ParseState) Operand() (Value, error) {
	loc := st.In.Loc()
	if err := st.In.Expect('%'); err != nil {
		return nil, err
	}
	name, err := st.In.Name()
	if err != nil {
		return nil, err
	}
	v, ok := st.values[name]
	if !ok {
		return nil, diag.InputErr(loc, "Use of undefined value %%%s", name)
	}
	return v, nil
}

// OperandList reads n comma-separated operands.
func (st *ParseState) OperandList(n int) ([]Value, error) {
	vals := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := st.In.ExpectSpaced(','); err != nil {
				return nil, err
			}
		}
		v, err := st.Operand()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// Finish fails unless only whitespace remains.
func (st *ParseState) Finish() error {
	st.In.SkipSpaces()
	if !st.In.EOF() {
		return st.In.Unexpected("end of input")
	}
	return nil
}

func parseQualified(st *ParseState) (DialectName, string, error) {
	d, err := ParseDialectName(st)
	if err != nil {
		return "", "", err
	}
	if err := st.In.Expect('.'); err != nil {
		return "", "", err
	}
	name, err := st.In.Identifier()
	if err != nil {
		return "", "", err
	}
	st.In.SkipSpaces()
	return d, name, nil
}

// ParseAttr reads "dialect.name payload" and dispatches the payload to the
// parser the attribute kind registered.
func ParseAttr(st *ParseState) (Attribute, error) {
	loc := st.In.Loc()
	d, name, err := parseQualified(st)
	if err != nil {
		return nil, err
	}
	id := AttrID{Dialect: d, Name: name}
	parse, ok := st.Ctx.attrParsers[id]
	if !ok {
		return nil, diag.InputErr(loc, "Unregistered attribute %s", id)
	}
	return parse(st)
}

// ParseType reads "dialect.name payload" and dispatches the payload to the
// parser the type kind registered.
func ParseType(st *ParseState) (TypePtr, error) {
	loc := st.In.Loc()
	d, name, err := parseQualified(st)
	if err != nil {
		return TypePtr{}, err
	}
	id := TypeID{Dialect: d, Name: name}
	parse, ok := st.Ctx.typeParsers[id]
	if !ok {
		return TypePtr{}, diag.InputErr(loc, "Unregistered type %s", id)
	}
	return parse(st)
}

type resultName struct {
	name string
	loc  location.Location
}

// ParseOp reads one op statement:
//
//	[%r (, %r)* =] dialect.name payload
//
// The op's result names become visible to later statements.
func ParseOp(st *ParseState) (Op, error) {
	loc := st.In.Loc()

	var names []resultName
	if st.In.PeekIs('%') {
		for {
			nameLoc := st.In.Loc()
			if err := st.In.Expect('%'); err != nil {
				return nil, err
			}
			n, err := st.In.Name()
			if err != nil {
				return nil, err
			}
			names = append(names, resultName{name: n, loc: nameLoc})
			st.In.SkipSpaces()
			if !st.In.Consume(',') {
				break
			}
			st.In.SkipSpaces()
		}
		if err := st.In.ExpectSpaced('='); err != nil {
			return nil, err
		}
	}

	idLoc := st.In.Loc()
	d, name, err := parseQualified(st)
	if err != nil {
		return nil, err
	}
	id := OpID{Dialect: d, Name: name}
	e, ok := st.Ctx.ops[id]
	if !ok {
		return nil, diag.InputErr(idLoc, "Unregistered operation %s", id)
	}

	op, err := e.parse(st)
	if err != nil {
		return nil, err
	}
	o := op.Operation()
	o.SetLoc(loc)

	if len(names) != o.NumResults() {
		return nil, diag.InputErr(loc, "Operation %s defines %d results, but %d names were given", id, o.NumResults(), len(names))
	}
	for i, n := range names {
		if _, dup := st.values[n.name]; dup {
			return nil, diag.InputErr(n.loc, "Value %%%s is already defined", n.name)
		}
		o.Result(i).SetName(n.name)
		st.values[n.name] = o.Result(i)
	}
	return op, nil
}

// ParseOps reads op statements until the input is exhausted.
func ParseOps(st *ParseState) ([]Op, error) {
	var ops []Op
	for {
		st.In.SkipSpaces()
		if st.In.EOF() {
			return ops, nil
		}
		op, err := ParseOp(st)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
}

// ParseAttrString parses input, which must hold exactly one attribute.
func ParseAttrString(ctx *Context, input string) (Attribute, error) {
	st := NewParseState(ctx, location.InMemory, input)
	a, err := ParseAttr(st)
	if err != nil {
		return nil, err
	}
	if err := st.Finish(); err != nil {
		return nil, err
	}
	return a, nil
}

// ParseTypeString parses input, which must hold exactly one type.
func ParseTypeString(ctx *Context, input string) (TypePtr, error) {
	st := NewParseState(ctx, location.InMemory, input)
	t, err := ParseType(st)
	if err != nil {
		return TypePtr{}, err
	}
	if err := st.Finish(); err != nil {
		return TypePtr{}, err
	}
	return t, nil
}

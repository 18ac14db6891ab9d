package ir

import (
	"strings"

	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/irfmt"
	"github.com/roach88/irkit/internal/location"
)

// Identifier is a name matching [A-Za-z_][A-Za-z0-9_]*.
type Identifier string

// NewIdentifier validates s.
func NewIdentifier(s string) (Identifier, error) {
	if !irfmt.IsIdentifier(s) {
		return "", diag.ArgErr(location.Unknown, "Malformed identifier %q", s)
	}
	return Identifier(s), nil
}

// MustIdentifier is NewIdentifier for names known at compile time.
func MustIdentifier(s string) Identifier {
	id, err := NewIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (i Identifier) String() string { return string(i) }

// DialectName names a dialect. Equality is string equality.
type DialectName string

func (n DialectName) String() string { return string(n) }

// OpID is the qualified identifier of an op kind.
type OpID struct {
	Dialect DialectName
	Name    string
}

// TypeID is the qualified identifier of a type kind.
type TypeID struct {
	Dialect DialectName
	Name    string
}

// AttrID is the qualified identifier of an attribute kind.
type AttrID struct {
	Dialect DialectName
	Name    string
}

func (id OpID) String() string   { return string(id.Dialect) + "." + id.Name }
func (id TypeID) String() string { return string(id.Dialect) + "." + id.Name }
func (id AttrID) String() string { return string(id.Dialect) + "." + id.Name }

func splitQualified(s string) (DialectName, string) {
	d, name, ok := strings.Cut(s, ".")
	if !ok || !irfmt.IsIdentifier(d) || !irfmt.IsIdentifier(name) {
		panic("ir: malformed qualified identifier " + s)
	}
	return DialectName(d), name
}

// MustOpID splits "dialect.name". It panics on malformed input and is meant
// for package-level kind declarations.
func MustOpID(s string) OpID {
	d, n := splitQualified(s)
	return OpID{Dialect: d, Name: n}
}

// MustTypeID is MustOpID for types.
func MustTypeID(s string) TypeID {
	d, n := splitQualified(s)
	return TypeID{Dialect: d, Name: n}
}

// MustAttrID is MustOpID for attributes.
func MustAttrID(s string) AttrID {
	d, n := splitQualified(s)
	return AttrID{Dialect: d, Name: n}
}

// Package location describes where in some textual input an IR entity or a
// diagnostic originates.
//
// A Location is either Unknown or a line/column position inside a Source.
// Sources are plain values: an in-memory buffer or a named file.
package location

import "fmt"

// SourceKind distinguishes in-memory input from file input.
type SourceKind int

const (
	// SourceInMemory is input that was never backed by a file.
	SourceInMemory SourceKind = iota
	// SourceFile is input read from a named file.
	SourceFile
)

// Source identifies the input a position belongs to.
type Source struct {
	Kind SourceKind
	Path string // only for SourceFile
}

// InMemory is the Source for strings parsed directly from memory.
var InMemory = Source{Kind: SourceInMemory}

// File returns a Source for the file at path.
func File(path string) Source {
	return Source{Kind: SourceFile, Path: path}
}

// String renders the source name used as a location prefix.
func (s Source) String() string {
	if s.Kind == SourceFile {
		return s.Path
	}
	return "<in-memory>"
}

// Position is a 1-based line and column pair.
type Position struct {
	Line   int
	Column int
}

// Location is either Unknown or a position bound to a Source.
// The zero value is Unknown.
type Location struct {
	known  bool
	source Source
	pos    Position
}

// Unknown is the location of things that did not come from text.
var Unknown = Location{}

// At returns a known location in src.
func At(src Source, line, column int) Location {
	return Location{known: true, source: src, pos: Position{Line: line, Column: column}}
}

// IsKnown reports whether l carries a source position.
func (l Location) IsKnown() bool {
	return l.known
}

// Source returns the source of a known location.
func (l Location) Source() Source {
	return l.source
}

// Position returns the position of a known location.
func (l Location) Position() Position {
	return l.pos
}

// String renders "<unknown>" or "<source>:<line>:<column>".
func (l Location) String() string {
	if !l.known {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.source, l.pos.Line, l.pos.Column)
}

// Located is implemented by anything that carries a Location.
type Located interface {
	Loc() Location
}

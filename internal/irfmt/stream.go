package irfmt

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/location"
)

// Stream is a position-tracked cursor over textual IR.
// Lines and columns are 1-based and count runes.
type Stream struct {
	src    location.Source
	input  []rune
	pos    int
	line   int
	column int
}

// Mark is a saved Stream position for backtracking.
type Mark struct {
	pos    int
	line   int
	column int
}

// NewStream returns a Stream at the start of input.
func NewStream(src location.Source, input string) *Stream {
	return &Stream{src: src, input: []rune(input), line: 1, column: 1}
}

// Loc returns the location of the next unread rune.
func (s *Stream) Loc() location.Location {
	return location.At(s.src, s.line, s.column)
}

// Source returns the source the stream reads from.
func (s *Stream) Source() location.Source {
	return s.src
}

// EOF reports whether all input has been consumed.
func (s *Stream) EOF() bool {
	return s.pos >= len(s.input)
}

// Peek returns the next rune without consuming it.
func (s *Stream) Peek() (rune, bool) {
	if s.EOF() {
		return 0, false
	}
	return s.input[s.pos], true
}

// PeekIs reports whether the next rune is r.
func (s *Stream) PeekIs(r rune) bool {
	c, ok := s.Peek()
	return ok && c == r
}

// Next consumes and returns the next rune.
func (s *Stream) Next() (rune, bool) {
	if s.EOF() {
		return 0, false
	}
	c := s.input[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c, true
}

// Mark saves the current position.
func (s *Stream) Mark() Mark {
	return Mark{pos: s.pos, line: s.line, column: s.column}
}

// Reset rewinds to a saved position.
func (s *Stream) Reset(m Mark) {
	s.pos, s.line, s.column = m.pos, m.line, m.column
}

// SkipSpaces consumes any whitespace, including newlines.
func (s *Stream) SkipSpaces() {
	for {
		c, ok := s.Peek()
		if !ok || !unicode.IsSpace(c) {
			return
		}
		s.Next()
	}
}

// Consume consumes r if it is next and reports whether it did.
func (s *Stream) Consume(r rune) bool {
	if s.PeekIs(r) {
		s.Next()
		return true
	}
	return false
}

// ConsumeString consumes lit if the input continues with it.
func (s *Stream) ConsumeString(lit string) bool {
	want := []rune(lit)
	if s.pos+len(want) > len(s.input) {
		return false
	}
	for i, r := range want {
		if s.input[s.pos+i] != r {
			return false
		}
	}
	for range want {
		s.Next()
	}
	return true
}

// Expect consumes r or fails at the current location.
func (s *Stream) Expect(r rune) error {
	if s.Consume(r) {
		return nil
	}
	return s.Unexpected(fmt.Sprintf("`%c`", r))
}

// ExpectSpaced is Expect surrounded by optional whitespace.
func (s *Stream) ExpectSpaced(r rune) error {
	s.SkipSpaces()
	if err := s.Expect(r); err != nil {
		return err
	}
	s.SkipSpaces()
	return nil
}

// Unexpected builds an InvalidInput error describing the next rune and,
// optionally, what was expected instead.
func (s *Stream) Unexpected(expected ...string) *diag.Error {
	found := "end of input"
	if c, ok := s.Peek(); ok {
		found = fmt.Sprintf("`%c`", c)
	}
	if len(expected) == 0 {
		return diag.InputErr(s.Loc(), "Unexpected %s", found)
	}
	return diag.InputErr(s.Loc(), "Unexpected %s, expected %s", found, JoinAlternatives(expected))
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// IsIdentifier reports whether s matches [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		if i == 0 && !isIdentStart(c) {
			return false
		}
		if !isIdentPart(c) {
			return false
		}
	}
	return true
}

// Identifier reads [A-Za-z_][A-Za-z0-9_]*.
func (s *Stream) Identifier() (string, error) {
	c, ok := s.Peek()
	if !ok || !isIdentStart(c) {
		return "", s.Unexpected("identifier")
	}
	var b strings.Builder
	for {
		c, ok := s.Peek()
		if !ok || !isIdentPart(c) {
			break
		}
		b.WriteRune(c)
		s.Next()
	}
	return b.String(), nil
}

// Name reads a value name, [A-Za-z0-9_]+.
func (s *Stream) Name() (string, error) {
	var b strings.Builder
	for {
		c, ok := s.Peek()
		if !ok || !isIdentPart(c) {
			break
		}
		b.WriteRune(c)
		s.Next()
	}
	if b.Len() == 0 {
		return "", s.Unexpected("value name")
	}
	return b.String(), nil
}

// Digits reads a possibly empty run of decimal digits.
func (s *Stream) Digits() string {
	var b strings.Builder
	for {
		c, ok := s.Peek()
		if !ok || c < '0' || c > '9' {
			return b.String()
		}
		b.WriteRune(c)
		s.Next()
	}
}

// Keyword reads an identifier that must be one of options.
// On mismatch the stream is left where the identifier started.
func (s *Stream) Keyword(options ...string) (string, error) {
	m := s.Mark()
	word, err := s.Identifier()
	if err == nil {
		for _, o := range options {
			if word == o {
				return word, nil
			}
		}
	}
	s.Reset(m)
	return "", s.Unexpected(options...)
}

// QuotedString reads a '"'-delimited string.
//
// A backslash introduces an escape; only \\ and \" are recognized. Any other
// escaped character fails at that character's location.
func (s *Stream) QuotedString() (string, error) {
	if err := s.Expect('"'); err != nil {
		return "", err
	}

	var b strings.Builder
	for {
		c, ok := s.Next()
		if !ok {
			return "", s.Unexpected("`\"`")
		}
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			loc := s.Loc()
			esc, ok := s.Next()
			if !ok {
				return "", s.Unexpected("escaped character")
			}
			if esc != '\\' && esc != '"' {
				return "", diag.InputErr(loc, "Unexpected escaped character \\%c", esc)
			}
			b.WriteRune(esc)
		default:
			b.WriteRune(c)
		}
	}
}

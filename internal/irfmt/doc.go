// Package irfmt holds the dialect-independent pieces of the textual IR
// format: a line/column tracking rune Stream with the lexical primitives
// every kind-specific grammar needs, and the printing helpers that mirror
// them.
//
// Failures are *diag.Error values of kind InvalidInput located at the
// stream position where the problem was found.
package irfmt

// Package ir is the dialect-extensible core of irkit.
//
// A Context owns every registered Dialect and every interned Type. Dialects
// contribute op, type and attribute kinds, each named by a qualified
// identifier "dialect.name" that doubles as the textual prefix and as the
// parser dispatch key. The core has no per-dialect cases: parsing reads the
// qualified identifier, checks the dialect is registered, and hands the rest
// of the stream to the routine the kind registered.
//
// Kinds are Go types satisfying Attribute, Type or Op. Capabilities beyond
// that fixed set are ordinary Go interfaces that a kind opts into with
// RegisterAttrInterface, RegisterTypeInterface or RegisterOpInterface;
// AttrCast, TypeCast and OpCast answer only for registered pairs.
//
// Attributes compare structurally (AttrEqual) and clone deeply. Types
// compare by handle identity because they are interned. Ops compare by
// identity of their Operation (OpEqual); CloneOp makes a new op with fresh
// results.
//
// Construction never validates. Verification is a separate explicit pass
// (VerifyOps) so IR can pass through invalid intermediate states while it is
// being built.
//
// A Context is not safe for concurrent use.
package ir

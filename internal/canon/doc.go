// Package canon provides the canonical parameter encoding used to hash-cons
// interned values.
//
// A kind describes its structural parameters as a canon.Value tree. The tree
// is serialized as RFC 8785 canonical JSON and hashed with a domain prefix;
// the resulting key is equal for structurally equal parameters regardless of
// map iteration or construction order. The ir package uses these keys as the
// intern table index for types.
//
// This package imports nothing internal.
package canon

// Package diag is the error model shared by parsing, construction and
// verification.
//
// Every recoverable failure is an *Error carrying one of three kinds:
//   - InvalidInput: malformed textual program (always located)
//   - VerificationFailed: well-formed but semantically invalid IR
//   - InvalidArgument: misuse of a construction API
//
// Errors chain through their Cause. Rendering prints the outer layer first and
// then the cause in the same format, one layer per line:
//
//	[<in-memory>:1:1] Compilation error: invalid input program.
//	Unregistered dialect foo
//
// This exact text is an external contract; downstream tooling may match it.
//
// Defects in dialect definitions are not errors of this package. They panic.
package diag

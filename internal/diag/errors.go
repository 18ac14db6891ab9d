package diag

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/roach88/irkit/internal/location"
)

// ErrorKind classifies a recoverable error.
type ErrorKind int

const (
	// InvalidInput means the textual program is malformed.
	InvalidInput ErrorKind = iota + 1

	// VerificationFailed means the IR is well formed but semantically invalid.
	VerificationFailed

	// InvalidArgument means a construction API was misused by its caller.
	InvalidArgument
)

// String returns the kind message used when rendering an Error.
func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input program"
	case VerificationFailed:
		return "verification failed"
	case InvalidArgument:
		return "invalid argument"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a classified, located error with an opaque cause.
//
// The cause may itself be an *Error, which makes a chain. Error implements
// Unwrap so errors.Is and errors.As walk the chain.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Cause is the underlying error. Never nil for errors built by this package.
	Cause error

	// Loc is where the failure was detected.
	Loc location.Location
}

// Error renders the causal stack:
//
//	[<location>] Compilation error: <kind message>.
//	<rendered cause>
func (e *Error) Error() string {
	cause := ""
	if e.Cause != nil {
		cause = e.Cause.Error()
	}
	return fmt.Sprintf("[%s] Compilation error: %s.\n%s", e.Loc, e.Kind, cause)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Location returns the location the error was raised at.
func (e *Error) Location() location.Location {
	return e.Loc
}

// New builds an Error of the given kind around cause.
func New(loc location.Location, kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause, Loc: loc}
}

// Newf builds an Error of the given kind with a formatted message as cause.
func Newf(loc location.Location, kind ErrorKind, format string, args ...any) *Error {
	return New(loc, kind, errors.Newf(format, args...))
}

// Wrap adds a located, classified layer on top of err.
// The inner error keeps its own location and is rendered after the new layer.
func Wrap(loc location.Location, kind ErrorKind, err error) *Error {
	return New(loc, kind, err)
}

// Input wraps cause as an InvalidInput error.
func Input(loc location.Location, cause error) *Error {
	return New(loc, InvalidInput, cause)
}

// InputErr builds an InvalidInput error from a formatted message.
func InputErr(loc location.Location, format string, args ...any) *Error {
	return Newf(loc, InvalidInput, format, args...)
}

// Verify wraps cause as a VerificationFailed error.
func Verify(loc location.Location, cause error) *Error {
	return New(loc, VerificationFailed, cause)
}

// VerifyErr builds a VerificationFailed error from a formatted message.
func VerifyErr(loc location.Location, format string, args ...any) *Error {
	return Newf(loc, VerificationFailed, format, args...)
}

// Arg wraps cause as an InvalidArgument error.
func Arg(loc location.Location, cause error) *Error {
	return New(loc, InvalidArgument, cause)
}

// ArgErr builds an InvalidArgument error from a formatted message.
func ArgErr(loc location.Location, format string, args ...any) *Error {
	return Newf(loc, InvalidArgument, format, args...)
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}

// LocOf returns the location of the outermost *Error in err's chain,
// or location.Unknown.
func LocOf(err error) location.Location {
	var de *Error
	if errors.As(err, &de) {
		return de.Loc
	}
	return location.Unknown
}

// IsInput reports whether err is classified InvalidInput.
func IsInput(err error) bool {
	k, ok := KindOf(err)
	return ok && k == InvalidInput
}

// IsVerify reports whether err is classified VerificationFailed.
func IsVerify(err error) bool {
	k, ok := KindOf(err)
	return ok && k == VerificationFailed
}

// IsArg reports whether err is classified InvalidArgument.
func IsArg(err error) bool {
	k, ok := KindOf(err)
	return ok && k == InvalidArgument
}

// Innermost returns the deepest *Error in err's chain, which carries the most
// specific location. Returns nil if err has no *Error.
func Innermost(err error) *Error {
	var last *Error
	for err != nil {
		if de, ok := err.(*Error); ok {
			last = de
		}
		err = errors.UnwrapOnce(err)
	}
	return last
}

// Package perror is the structured error taxonomy of the core (spec §7):
// an *Error carries one of a fixed set of codes, so callers can branch on
// errors.Is/As instead of string-matching. pzruntime reports its failures
// as *Error values; binary, task, commpp and collective return plain
// wrapped errors and sentinel values instead.
package perror

import "fmt"

// Code classifies a failure into one of the taxonomy's five buckets (spec
// §7): which invariant or collaborator contract was violated.
type Code string

const (
	// CodeMissingState: an operation was attempted on a resource set or
	// view that doesn't have what it needs (no RAM descriptor, no
	// communicator, a consumed task).
	CodeMissingState Code = "missing_state"
	// CodeBufferMisSized: a caller-supplied output buffer is too small for
	// the data a collective or codec op is about to write.
	CodeBufferMisSized Code = "buffer_mis_sized"
	// CodeSubstrateError: the message-passing collaborator itself reported
	// a failure (a malformed communicator handle, a transport error).
	CodeSubstrateError Code = "substrate_error"
	// CodeAllocation: a RAM or buffer allocation failed or reported an
	// invalid/negative size.
	CodeAllocation Code = "allocation"
	// CodeSerialization: encoding or decoding a value failed.
	CodeSerialization Code = "serialization"
)

// Error is the structured error every core package returns. Op names the
// operation that failed (e.g. "collective.Reduce", "binary.FromBuffer");
// Code classifies the failure; Msg is a human-readable detail; Inner, if
// set, is the underlying error this one wraps.
type Error struct {
	Op    string
	Code  Code
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("pzgo: %s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("pzgo: %s: %s: %s", e.Op, e.Code, e.Msg)
}

// Unwrap supports errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error { return e.Inner }

// Is lets errors.Is(err, perror.New("", code, "")) match on Code alone,
// the common case of a caller checking "was this a buffer-size problem"
// without caring about Op or Msg.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	if te.Code == "" {
		return false
	}
	return e.Code == te.Code
}

// New constructs a structured error with no wrapped cause.
func New(op string, code Code, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// Wrap attaches op and code to an existing error, preserving it as the
// Unwrap chain's next link. Wrapping nil returns nil, mirroring the
// teacher's WrapError contract so call sites can unconditionally wrap a
// possibly-nil err without an extra nil check.
func Wrap(op string, code Code, inner error) *Error {
	if inner == nil {
		return nil
	}
	return &Error{Op: op, Code: code, Msg: inner.Error(), Inner: inner}
}

// Matches is sugar for errors.Is(err, code) against a bare Code, since
// Code itself isn't an error.
func Matches(err error, code Code) bool {
	var e *Error
	return asError(err, &e) && e.Code == code
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode defines supported error codes used across the pipeline
// Values are stable for log/exit compatibility; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeUnavailable is for transient errors where retry may succeed
	ErrorCodeUnavailable

	// ErrorCodeInvalidArgument is for bad input parameters
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is for validation failures (input data)
	ErrorCodeValidation

	// ErrorCodeNotFound is for missing rows
	ErrorCodeNotFound

	// ErrorCodeDuplicateKey is for unique constraint violations
	ErrorCodeDuplicateKey

	// ErrorCodeDB is for general database errors
	ErrorCodeDB

	// ErrorCodeSourceNotFound is for an input source path that does not exist
	ErrorCodeSourceNotFound

	// ErrorCodeInvalidFormat is for an extension/content mismatch with the requested parser
	ErrorCodeInvalidFormat

	// ErrorCodeInvalidDate is for an unparseable or out of range date
	ErrorCodeInvalidDate

	// ErrorCodeUnrecognizedType is for a record whose Type matches no known variant (non-fatal)
	ErrorCodeUnrecognizedType

	// ErrorCodeIO is for local file system failures
	ErrorCodeIO
)

var codeNames = map[ErrorCode]string{
	ErrorCodeUnknown:          "unknown",
	ErrorCodeUnavailable:      "unavailable",
	ErrorCodeInvalidArgument:  "invalid_argument",
	ErrorCodeValidation:       "validation",
	ErrorCodeNotFound:         "not_found",
	ErrorCodeDuplicateKey:     "duplicate_key",
	ErrorCodeDB:               "db",
	ErrorCodeSourceNotFound:   "source_not_found",
	ErrorCodeInvalidFormat:    "invalid_format",
	ErrorCodeInvalidDate:      "invalid_date",
	ErrorCodeUnrecognizedType: "unrecognized_type",
	ErrorCodeIO:               "io",
}

// String returns the snake_case name used in logs
func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// Input reports whether the code describes bad input rather than a failing dependency
func (c ErrorCode) Input() bool {
	switch c {
	case ErrorCodeSourceNotFound, ErrorCodeInvalidFormat, ErrorCodeInvalidDate,
		ErrorCodeInvalidArgument, ErrorCodeValidation:
		return true
	default:
		return false
	}
}

// ExitCode turns an error into a process exit status
// 0 success, 2 rejected input (nothing mutated), 1 everything else
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if CodeOf(err).Input() {
		return 2
	}
	return 1
}

// ErrNotFound is a sentinel not found error for convenience
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// field is optional (for validation); op is optional operation tag
// orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithField attaches a field to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// Sugar

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// SourceNotFoundf returns a missing input source error
func SourceNotFoundf(format string, a ...any) error {
	return Newf(ErrorCodeSourceNotFound, format, a...)
}

// InvalidFormatf returns an invalid format error
func InvalidFormatf(format string, a ...any) error { return Newf(ErrorCodeInvalidFormat, format, a...) }

// InvalidDatef returns an invalid date error
func InvalidDatef(format string, a ...any) error { return Newf(ErrorCodeInvalidDate, format, a...) }

// UnrecognizedTypef returns a non-fatal unrecognized record type error
func UnrecognizedTypef(format string, a ...any) error {
	return Newf(ErrorCodeUnrecognizedType, format, a...)
}

// IOf wraps a file system failure
func IOf(orig error, format string, a ...any) error { return Wrapf(orig, ErrorCodeIO, format, a...) }

// Retry semantics

// Retryable reports whether the error is retryable. Delegates to backend-specific logic.
// Backed by the Postgres helpers in pg.go and the SQLite helpers in sqlite.go
func Retryable(err error) bool { return IsRetryable(err) || IsSQLiteBusy(err) }

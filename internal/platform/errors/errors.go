// Package errors is grocer's structured error type. Import it as perr.
//
// Every error that crosses a package boundary carries an ErrorCode so the CLI
// can pick an exit status and the HTTP view a response status without string
// matching.
package errors

import (
	stderrs "errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrNotFound is the bare not found error returned by lookups
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error is a classified error. msg is for people, code is for programs,
// field names the offending input and op the operation that failed
type Error struct {
	code  ErrorCode
	msg   string
	field string
	op    string
	cause error
}

// Error renders "msg: cause"
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.cause != nil:
		return e.msg + ": " + e.cause.Error()
	default:
		return e.msg
	}
}

func (e *Error) Unwrap() error   { return e.cause }
func (e *Error) Code() ErrorCode { return e.code }
func (e *Error) Field() string   { return e.field }
func (e *Error) Op() string      { return e.op }
func (e *Error) Message() string { return e.msg }

// MarshalZerologObject lets loggers attach the error with .Object("error", e)
func (e *Error) MarshalZerologObject(ev *zerolog.Event) {
	ev.Stringer("code", e.code).Str("msg", e.msg)
	if e.field != "" {
		ev.Str("field", e.field)
	}
	if e.op != "" {
		ev.Str("op", e.op)
	}
	if e.cause != nil {
		ev.AnErr("cause", e.cause)
	}
}

// Wire is the error body of a JSON envelope
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// WireFrom converts any error for a response without its cause chain.
// Foreign errors become unknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns err's code, ErrorCodeUnknown when it has none
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// Root returns the innermost cause
func Root(err error) error {
	for {
		next := stderrs.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// WithField returns a copy of err naming the offending field. Foreign errors pass through
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

// WithOp returns a copy of err tagged with the failing operation. Foreign errors pass through
func WithOp(err error, op string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.op = op
	return &c
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap classifies cause under code. A nil cause still yields an error
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), cause: cause}
}

func NotFoundf(format string, a ...any) error   { return Newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }
func Formatf(format string, a ...any) error     { return Newf(ErrorCodeFormat, format, a...) }
func StorageIOf(format string, a ...any) error  { return Newf(ErrorCodeStorageIO, format, a...) }
func Internalf(format string, a ...any) error   { return Newf(ErrorCodeUnknown, format, a...) }

func Normalizationf(format string, a ...any) error {
	return Newf(ErrorCodeNormalization, format, a...)
}

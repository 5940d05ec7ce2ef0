package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an error so the HTTP layer can pick a status without
// string matching.
type Code string

const (
	CodeNotFound     Code = "NOT_FOUND"
	CodeIntegrity    Code = "INTEGRITY"
	CodeInvalid      Code = "INVALID"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeInternal     Code = "INTERNAL"
)

// Error is a coded application error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// NotFound marks a referenced entity that does not exist.
func NotFound(format string, args ...interface{}) *Error {
	return New(CodeNotFound, fmt.Sprintf(format, args...))
}

// Integrity marks a reference-integrity or uniqueness violation.
func Integrity(format string, args ...interface{}) *Error {
	return New(CodeIntegrity, fmt.Sprintf(format, args...))
}

func Invalid(format string, args ...interface{}) *Error {
	return New(CodeInvalid, fmt.Sprintf(format, args...))
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Package domainerrors defines the coded error taxonomy shared by the codec,
// the builders and the gateway. Import it as dErrors.
//
// Every failure carries a Code so callers can tell "not JSON" apart from
// "valid JSON, invalid Statement" without string matching, plus the JSON path
// of the offending field and the raw value when one is available.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error.
type Code string

const (
	// CodeParse: input is not syntactically valid JSON.
	CodeParse Code = "parse_error"
	// CodeMissingField: valid JSON lacking a structurally required field.
	CodeMissingField Code = "missing_field"
	// CodeUnsupportedType: unrecognised objectType discriminator.
	CodeUnsupportedType Code = "unsupported_type"
	// CodeInvalidNesting: a SubStatement whose object is a SubStatement.
	CodeInvalidNesting Code = "invalid_nesting"
	// CodeValidation: a construction-time invariant was violated.
	CodeValidation Code = "validation_error"
	// CodeFormat: a value codec received a string of the wrong shape.
	CodeFormat Code = "format_error"
	// CodeInvariantViolation: an operation is not allowed in the entity's current state.
	CodeInvariantViolation Code = "invariant_violation"

	CodeBadRequest Code = "bad_request"
	CodeNotFound   Code = "not_found"
	CodeTooLarge   Code = "payload_too_large"
	CodeInternal   Code = "internal_error"
)

// Error is the concrete error type returned throughout the module.
type Error struct {
	Code    Code
	Message string
	// Field is the dotted JSON path of the offending field, if known.
	Field string
	// Value is the offending raw value, if known.
	Value string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Value != "" {
		msg = fmt.Sprintf("%s (got %q)", msg, e.Value)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf is New with a format string.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message. The wrapped error stays
// reachable through errors.Is / errors.As.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// WithField returns a copy of e carrying the JSON path of the offending field.
func (e *Error) WithField(field string) *Error {
	cp := *e
	cp.Field = field
	return &cp
}

// WithValue returns a copy of e carrying the offending raw value.
func (e *Error) WithValue(value string) *Error {
	cp := *e
	cp.Value = value
	return &cp
}

// AtPath prefixes the error's field path with parent. Used by the decoder to
// report nested failures with their full location.
func AtPath(err error, parent string) error {
	var de *Error
	if parent == "" || !errors.As(err, &de) {
		return err
	}
	cp := *de
	if cp.Field == "" {
		cp.Field = parent
	} else {
		cp.Field = parent + "." + cp.Field
	}
	return &cp
}

// HasCode reports whether err (or anything it wraps) is an *Error with code.
func HasCode(err error, code Code) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == code
}

// Is is an alias of HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the code of err, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// FieldOf returns the field path recorded on err, if any.
func FieldOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}

// MissingField reports an absent required field.
func MissingField(field string) *Error {
	return &Error{Code: CodeMissingField, Message: "required field is missing", Field: field}
}

// UnsupportedType reports an unrecognised discriminator value.
func UnsupportedType(field, value string) *Error {
	return &Error{Code: CodeUnsupportedType, Message: "unsupported objectType", Field: field, Value: value}
}

// Format reports a value whose shape does not match its codec.
func Format(field, value, msg string) *Error {
	return &Error{Code: CodeFormat, Message: msg, Field: field, Value: value}
}

// Validation reports a violated construction invariant.
func Validation(field, msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg, Field: field}
}

// Package errors provides structured error types for eqsteps.
//
// Every error raised by the engine carries a [Code] so the CLI, the HTTP
// server and embedding tools can decide how to react without matching on
// message text.
//
// # Error Categories
//
// Codes fall into categories with different handling rules:
//   - Configuration (INVALID_*): malformed instructions or config. Fatal at
//     parse time; no partially built tree or frame list is kept.
//   - Semantic (DUPLICATE_CONTENT, NOTHING_SELECTED, NOT_DELETABLE): an edit
//     cannot be applied. The caller shows [UserMessage] and state is unchanged.
//   - Lookup (NOT_FOUND, STEP_NOT_FOUND): a session, artifact or step index
//     does not exist.
//   - Internal (INTERNAL_ERROR, UNSUPPORTED): a broken invariant such as a
//     corrupted content reference reaching style resolution.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidContainer, "unrecognized container type %q", typ)
//	if errors.Is(err, errors.ErrCodeInvalidContainer) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

// Configuration errors: fatal while parsing instructions or config.
const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidContainer Code = "INVALID_CONTAINER"
	ErrCodeInvalidReference Code = "INVALID_REFERENCE"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
)

// Semantic errors: an edit was refused and nothing changed.
const (
	ErrCodeDuplicateContent Code = "DUPLICATE_CONTENT"
	ErrCodeNothingSelected  Code = "NOTHING_SELECTED"
	ErrCodeNotDeletable     Code = "NOT_DELETABLE"
)

// Lookup and internal errors.
const (
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeStepNotFound Code = "STEP_NOT_FOUND"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
)

// Category groups codes by how callers react to them.
type Category int

const (
	CategoryNone Category = iota
	CategoryConfiguration
	CategorySemantic
	CategoryLookup
	CategoryInternal
)

var categories = map[Code]Category{
	ErrCodeInvalidInput:     CategoryConfiguration,
	ErrCodeInvalidContainer: CategoryConfiguration,
	ErrCodeInvalidReference: CategoryConfiguration,
	ErrCodeInvalidColor:     CategoryConfiguration,
	ErrCodeInvalidFormat:    CategoryConfiguration,
	ErrCodeInvalidConfig:    CategoryConfiguration,
	ErrCodeDuplicateContent: CategorySemantic,
	ErrCodeNothingSelected:  CategorySemantic,
	ErrCodeNotDeletable:     CategorySemantic,
	ErrCodeNotFound:         CategoryLookup,
	ErrCodeStepNotFound:     CategoryLookup,
	ErrCodeInternal:         CategoryInternal,
	ErrCodeUnsupported:      CategoryInternal,
}

// Error carries a code, a message for people and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// outermost returns the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error, or "" for foreign errors.
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// CategoryOf classifies err by its code.
func CategoryOf(err error) Category {
	return categories[GetCode(err)]
}

// UserMessage strips the code prefix from coded errors. Semantic errors are
// shown to the user as they are; the cause stays available through Unwrap.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}

func IsConfiguration(err error) bool { return CategoryOf(err) == CategoryConfiguration }
func IsSemantic(err error) bool      { return CategoryOf(err) == CategorySemantic }

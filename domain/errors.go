package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures for logging and transport mapping. Backend
// callers still treat any returned error as an opaque failure; the codes
// exist so operators can tell "nothing stored yet" from "store unreachable".
type ErrorCode string

const (
	ErrCodeNotFound    ErrorCode = "NOT_FOUND"
	ErrCodeValidation  ErrorCode = "VALIDATION"
	ErrCodeUnreachable ErrorCode = "UNREACHABLE"
	ErrCodeMalformed   ErrorCode = "MALFORMED"
	ErrCodeInternal    ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
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

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrNotStored         = NewError(ErrCodeNotFound, "no snapshot stored")
	ErrClanNotRegistered = NewError(ErrCodeNotFound, "clan not registered")
	ErrSeasonNotFound    = NewError(ErrCodeNotFound, "no stats recorded for season")
	ErrInvalidPayload    = NewError(ErrCodeValidation, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

package errors

import (
	"errors"
	"fmt"
)

var NotFound = errors.New("Not found")

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// ValidationError rejects a create/update before anything is persisted.
// Field names the offending attribute so the caller can attach the message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation error on %s: %s", e.Field, e.Message)
}

// SearchUnavailableError distinguishes a degraded search index from an
// empty result set. Wraps the underlying transport/timeout error.
type SearchUnavailableError struct {
	Err error
}

func (e *SearchUnavailableError) Error() string {
	return fmt.Sprintf("search unavailable: %v", e.Err)
}

func (e *SearchUnavailableError) Unwrap() error {
	return e.Err
}

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

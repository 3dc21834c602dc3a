package domain

import (
	"errors"
	"strconv"
)

var (
	// ErrOrderNotFound is returned when an order id has no registry entry.
	ErrOrderNotFound = errors.New("order not found")

	// ErrUnknownInstrument is returned when a symbol is not part of the tradable set.
	ErrUnknownInstrument = errors.New("unknown instrument")

	// ErrConfigNotFound is returned when the configuration file is missing.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrFeedExhausted is returned by order feeds once the input sequence ends.
	ErrFeedExhausted = errors.New("order feed exhausted")
)

// ValidationError describes a single rejected field of an order request.
// Its Reason is carried on the order record and echoed in the Rejected
// execution report.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationError for one field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// FeedError wraps a failure while reading or parsing the order feed.
type FeedError struct {
	Line int
	Err  error
}

func (e *FeedError) Error() string {
	return "feed error at line " + strconv.Itoa(e.Line) + ": " + e.Err.Error()
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

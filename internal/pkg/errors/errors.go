package errors

import "errors"

var (
	// ErrNotFound is returned when a referenced question or category does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation marks malformed input: bad ids, non-positive pages, missing fields.
	ErrValidation = errors.New("validation failed")

	// ErrUnprocessable marks well-formed input the store cannot act on,
	// e.g. a question that references a category that does not exist.
	ErrUnprocessable = errors.New("unprocessable entity")
)

package repository

import "errors"

var (
	// ErrSubmissionNotFound is returned when no submission has the requested
	// reference number.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrDuplicateReference is returned when the reference number is already taken.
	ErrDuplicateReference = errors.New("reference number already in use")
	// ErrStoreUnavailable wraps connectivity failures of the backing store.
	ErrStoreUnavailable = errors.New("submission store unavailable")
)

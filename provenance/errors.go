package provenance

import "errors"

// Common provenance errors.
var (
	// ErrNotFound is returned when a referenced node or edge does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyInput is returned when a required scalar input is blank.
	// It is distinct from ErrNotFound: the caller asked for nothing,
	// not for something that is missing.
	ErrEmptyInput = errors.New("empty input")
)

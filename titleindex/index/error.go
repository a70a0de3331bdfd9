package index

import "errors"

var (
	// ErrNotFound is returned when a document lookup fails to locate an
	// entry.
	ErrNotFound = errors.New("not found")

	// ErrMissingID is returned when attempting to index a document that
	// does not specify a valid document ID.
	ErrMissingID = errors.New("document does not provide a valid ID")
)

package registry

import "errors"

var (
	// ErrDuplicateID is returned when adding a patient or doctor whose id
	// is already present in its collection. Non-fatal; callers retry with
	// corrected input.
	ErrDuplicateID = errors.New("id already exists")

	// ErrNotFound is returned when editing a patient or doctor by an id
	// that is not in the collection.
	ErrNotFound = errors.New("record not found")
)

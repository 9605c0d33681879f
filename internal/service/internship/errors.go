package internship

import "errors"

var (
	ErrNotFound = errors.New("internship not found")

	// ErrNoResults distinguishes an empty search from a store failure:
	// expected, non-retryable, mapped to 404 by the handler.
	ErrNoResults = errors.New("no internships match the given filters")

	ErrSlugConflict = errors.New("internship slug already taken")
)

package domain

import "errors"

// Error taxonomy. NotFound is surfaced to callers verbatim; malformed
// documents and internal failures are logged in full and mapped to a
// generic message at the API boundary.
var (
	ErrNotFound          = errors.New("not found")
	ErrMalformedDocument = errors.New("malformed evolution document")
	ErrConnection        = errors.New("evolution feed connection error")
	ErrInvalidLimit      = errors.New("limit must be >= 1")
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidTimeRange  = errors.New("invalid time range")
	ErrEmptySeries       = errors.New("evolution series is empty")
)

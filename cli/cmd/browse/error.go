package browse

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrNoDocument  = errors.New("no document to browse")
)

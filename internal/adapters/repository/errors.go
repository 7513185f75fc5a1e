package repository

import "errors"

// Sentinel kinds for view store errors.
var (
	ErrNotFound = errors.New("view not found")
)

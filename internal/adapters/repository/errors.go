package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNotReady = errors.New("no snapshot derived yet")
	ErrNotFound = errors.New("not found")
)

package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrUnknownDivision = errors.New("unknown division")
	ErrRebuildRunning  = errors.New("rebuild already in progress")
)

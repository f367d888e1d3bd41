package ingest

import (
	"errors"
)

// Sentinel kinds for ingest errors.
var (
	ErrMissingEventLog = errors.New("event log path not configured")
)

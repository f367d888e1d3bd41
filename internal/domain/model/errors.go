package model

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrBadDate = errors.New("unparseable date")
)

package model

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts the ingestion layer emits. "January 1967" means the 1st.
const (
	layoutFull      = "January 2, 2006"
	layoutMonthYear = "January 2006"
)

// ParseDate parses "Month Day, Year" or "Month Year" (day defaults to the
// 1st). Returns ErrBadDate for anything else.
func ParseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, ErrBadDate
	}
	for _, layout := range []string{layoutFull, layoutMonthYear} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
}

// FormatDate renders a date as "Month Day, Year" with no leading zero.
func FormatDate(t time.Time) string {
	return t.Format(layoutFull)
}

// DaysBetween returns whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

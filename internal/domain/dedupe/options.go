// Package dedupe tracks seen record keys so repeated entries in the
// source logs are ingested at most once.
package dedupe

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize bounds the seen set. Once full, the oldest keys are
// evicted. A size of zero or less keeps the set unbounded.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = maxSize
	}
}

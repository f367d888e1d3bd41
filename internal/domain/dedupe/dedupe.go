// Package dedupe tracks seen record keys so repeated entries in the
// source logs are ingested at most once.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen keys to ensure at-most-once ingestion.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if
	// not. Returns true if key was already seen, false if it was newly
	// recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	Size() int64
}

// inMemoryDeduper keeps seen keys in a map. In bounded mode the oldest
// keys are evicted once maxSize is reached.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // insertion order, bounded mode only
	maxSize int      // 0 or negative means unbounded
}

// NewInMemoryDeduper creates a new in-memory deduper. The default is
// unbounded; replays walk a finite log, so the seen set is finite too.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		seen: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}
	if d.maxSize > 0 {
		if len(d.seen) >= d.maxSize {
			d.evictOldest()
		}
		d.order = append(d.order, key)
	}
	d.seen[key] = struct{}{}
	return false
}

// evictOldest drops the oldest recorded key. Must be called with d.mu
// held and only in bounded mode.
func (d *inMemoryDeduper) evictOldest() {
	if len(d.order) == 0 {
		return
	}
	delete(d.seen, d.order[0])
	d.order = d.order[1:]
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}

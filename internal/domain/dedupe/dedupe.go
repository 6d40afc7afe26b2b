// Package dedupe tracks seen record signatures so the importer drops
// duplicate score sheet rows.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen signatures for at-most-once ingestion.
type Deduper interface {
	// SeenAndRecord atomically checks whether sig was seen and records it if
	// not. Returns true if sig was already seen.
	SeenAndRecord(ctx context.Context, sig string) bool

	// Unrecord forgets a signature, allowing the row to be retried after a
	// failed write.
	Unrecord(ctx context.Context, sig string)

	// Size returns the number of tracked signatures.
	Size() int
}

// inMemoryDeduper is a bounded in-memory Deduper. When full, the oldest
// signature is evicted (FIFO over a ring). maxSize <= 0 means unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
}

// Option applies a configuration option to the deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize bounds the number of signatures kept in memory.
func WithMaxSize(n int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = n
	}
}

// NewInMemoryDeduper creates an in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 100_000,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, sig string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[sig]; ok {
		return true
	}
	if d.maxSize > 0 {
		if old := d.ring[d.next]; old != "" {
			delete(d.seen, old)
		}
		d.ring[d.next] = sig
		d.next = (d.next + 1) % d.maxSize
	}
	d.seen[sig] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, sig string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, sig)
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

// Package dedup tracks previously seen event ids and keeps a bounded
// most-recent-first window of admitted events. Both structures are written
// only by the ingestion cycle and read concurrently by the query surface,
// so every access goes through one mutex.
package dedup

import (
	"sync"

	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
)

// Default capacities
const (
	DefaultSeenCapacity   = 1000
	DefaultRecentCapacity = 100
)

// Deduplicator is safe for concurrent use
type Deduplicator struct {
	mu        sync.Mutex
	seen      map[string]struct{}
	seenOrder []string // insertion order, oldest first
	recent    []models.Earthquake
	seenCap   int
	recentCap int
}

// New creates a deduplicator with the given capacities; non-positive
// values fall back to the defaults.
func New(seenCapacity, recentCapacity int) *Deduplicator {
	if seenCapacity <= 0 {
		seenCapacity = DefaultSeenCapacity
	}
	if recentCapacity <= 0 {
		recentCapacity = DefaultRecentCapacity
	}
	return &Deduplicator{
		seen:      make(map[string]struct{}, seenCapacity),
		recent:    make([]models.Earthquake, 0, recentCapacity),
		seenCap:   seenCapacity,
		recentCap: recentCapacity,
	}
}

// Admit atomically checks whether the event is new and records it if so.
// Returns false for duplicates. When the seen set exceeds capacity the
// oldest id is evicted (FIFO).
func (d *Deduplicator) Admit(ev models.Earthquake) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[ev.ID]; exists {
		return false
	}

	d.seen[ev.ID] = struct{}{}
	d.seenOrder = append(d.seenOrder, ev.ID)

	// push to the front of the recent window, evicting the oldest
	d.recent = append([]models.Earthquake{ev}, d.recent...)
	if len(d.recent) > d.recentCap {
		d.recent = d.recent[:d.recentCap]
	}

	if len(d.seen) > d.seenCap {
		oldest := d.seenOrder[0]
		d.seenOrder = d.seenOrder[1:]
		delete(d.seen, oldest)
	}

	return true
}

// Seen reports whether the id has already been admitted. It is a cheap
// pre-check so callers can skip enrichment work for duplicates; Admit
// remains the authoritative check-and-record.
func (d *Deduplicator) Seen(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, exists := d.seen[id]
	return exists
}

// Recent returns a snapshot of the window, most recently admitted first.
// A non-positive limit returns the whole window.
func (d *Deduplicator) Recent(limit int) []models.Earthquake {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(d.recent)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.Earthquake, n)
	copy(out, d.recent[:n])
	return out
}

// SeenCount returns the current size of the seen-id set
func (d *Deduplicator) SeenCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

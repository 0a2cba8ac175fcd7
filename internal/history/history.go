// Package history keeps a bounded, in-memory log of attempted navigations.
// Entries are fully built destination URLs; when the buffer is full the
// oldest entry is evicted first.
package history

import "sync"

// DefaultCapacity is used when a Buffer is created with a non-positive capacity.
const DefaultCapacity = 50

// Buffer is a fixed-capacity FIFO of visited destinations.
// Safe for concurrent use.
type Buffer struct {
	mu       sync.Mutex
	entries  []string
	capacity int
}

// New creates a Buffer with the given capacity.
// Capacity <= 0 falls back to DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		entries:  make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Record appends a destination URL, evicting the oldest entry when full.
func (b *Buffer) Record(url string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == b.capacity {
		copy(b.entries, b.entries[1:])
		b.entries = b.entries[:len(b.entries)-1]
	}
	b.entries = append(b.entries, url)
}

// Snapshot returns a copy of the recorded entries, oldest first.
// Mutating the returned slice does not affect the buffer.
func (b *Buffer) Snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of recorded entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Clear discards all recorded entries. Capacity is unchanged.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = b.entries[:0]
}

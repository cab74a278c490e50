package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DefaultCapacity is used by [NewCircularBuffer] for non-positive capacities.
const DefaultCapacity = 100

// CircularBuffer is an [io.Writer] that keeps the most recent writes.
//
// The TUI owns the terminal while it runs, so log output is captured here and
// flushed to stderr once the program exits.
type CircularBuffer struct {
	entries [][]byte
	next    int
	size    int
	mu      sync.Mutex
}

// NewCircularBuffer creates a [CircularBuffer] holding up to capacity entries.
func NewCircularBuffer(capacity int) *CircularBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &CircularBuffer{entries: make([][]byte, capacity)}
}

// Write stores a copy of p as a single entry, evicting the oldest entry when
// the buffer is full.
func (cb *CircularBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.entries[cb.next] = bytes.Clone(p)
	cb.next = (cb.next + 1) % len(cb.entries)
	cb.size = min(cb.size+1, len(cb.entries))

	return len(p), nil
}

// Entries returns copies of the stored entries, oldest first.
func (cb *CircularBuffer) Entries() [][]byte {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.size == 0 {
		return nil
	}

	out := make([][]byte, 0, cb.size)
	start := (cb.next - cb.size + len(cb.entries)) % len(cb.entries)

	for i := range cb.size {
		out = append(out, bytes.Clone(cb.entries[(start+i)%len(cb.entries)]))
	}

	return out
}

// Size returns the number of stored entries.
func (cb *CircularBuffer) Size() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.size
}

// Capacity returns the maximum number of entries.
func (cb *CircularBuffer) Capacity() int {
	return len(cb.entries)
}

// Clear drops all entries.
func (cb *CircularBuffer) Clear() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	clear(cb.entries)
	cb.next = 0
	cb.size = 0
}

// WriteTo writes the stored entries to w, oldest first.
func (cb *CircularBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, entry := range cb.Entries() {
		n, err := w.Write(entry)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write entry: %w", err)
		}
	}

	return total, nil
}

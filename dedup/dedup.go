// Package dedup implements the fixed-size (station, sequence) dedup
// window spec §6 describes as a gateway collaborator: a ring of the most
// recently seen packet identities, keyed by codec.Peek's header fields
// so a caller never needs to decode a packet's body just to drop a
// repeat.
package dedup

import "github.com/matthewgream/iotdata/internal/hash"

// Window is a fixed-capacity ring of recently seen (station, sequence)
// identities. The oldest entry is evicted once the ring is full.
//
// Window is not safe for concurrent use.
type Window struct {
	capacity int
	hashes   []uint64
	filled   []bool
	seen     map[uint64]struct{}
	next     int
}

// NewWindow returns a Window holding at most capacity identities.
func NewWindow(capacity int) *Window {
	return &Window{
		capacity: capacity,
		hashes:   make([]uint64, capacity),
		filled:   make([]bool, capacity),
		seen:     make(map[uint64]struct{}, capacity),
	}
}

func key(station, sequence int) uint64 {
	buf := [4]byte{byte(station >> 8), byte(station), byte(sequence >> 8), byte(sequence)}

	return hash.ID(string(buf[:]))
}

// IsDuplicate reports whether (station, sequence) has been seen within
// the current window, recording it as seen either way. Once the window
// is full, recording a new identity evicts the oldest.
func (w *Window) IsDuplicate(station, sequence int) bool {
	k := key(station, sequence)
	if _, ok := w.seen[k]; ok {
		return true
	}

	if w.filled[w.next] {
		delete(w.seen, w.hashes[w.next])
	}
	w.hashes[w.next] = k
	w.filled[w.next] = true
	w.seen[k] = struct{}{}
	w.next = (w.next + 1) % w.capacity

	return false
}

// Reset clears the window, preserving its allocated capacity.
func (w *Window) Reset() {
	for k := range w.seen {
		delete(w.seen, k)
	}
	for i := range w.filled {
		w.filled[i] = false
	}
	w.next = 0
}

// Len returns how many distinct identities the window currently holds.
func (w *Window) Len() int {
	return len(w.seen)
}

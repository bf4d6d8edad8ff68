package board

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// History is a stack of position keys used to detect
// repetition and 50-move draws; it lives outside Position because
// repetition is determined externally from a key history appended on
// each move, per spec.
type History struct {
	keys []uint64
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{keys: make([]uint64, 0, 128)}
}

// Push appends a position's key after a move has been made.
func (h *History) Push(hash uint64) {
	h.keys = append(h.keys, historyKey(hash))
}

// Pop removes the most recently pushed key, mirroring UnmakeMove.
func (h *History) Pop() {
	if len(h.keys) > 0 {
		h.keys = h.keys[:len(h.keys)-1]
	}
}

// Len returns the number of recorded positions.
func (h *History) Len() int { return len(h.keys) }

// Truncate discards every key recorded after index n, restoring the
// history to the length it had at some earlier point (used to undo the
// tentative pushes a single selection iteration made while probing a
// path for repetition).
func (h *History) Truncate(n int) {
	if n < len(h.keys) {
		h.keys = h.keys[:n]
	}
}

// Reset clears the history (used by ucinewgame).
func (h *History) Reset() { h.keys = h.keys[:0] }

// IsRepetition reports whether hash occurs at least twice among the
// most recent halfMoveClock keys of the history. Callers push the
// current position's key before asking, so that key is one of the two:
// the check fires as soon as the current position repeats one position
// inside that window (a twofold repetition), without needing the full
// game history.
func (h *History) IsRepetition(hash uint64, halfMoveClock int) bool {
	key := historyKey(hash)
	count := 0
	limit := len(h.keys) - halfMoveClock
	if limit < 0 {
		limit = 0
	}
	for i := len(h.keys) - 1; i >= limit; i-- {
		if h.keys[i] == key {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// historyKey remixes a Zobrist key through xxhash so the history table
// does not inherit any structure from the Zobrist PRNG's output
// distribution (a cheap, already-vendored hash, since badger pulls in
// xxhash transitively for its own value checksums).
func historyKey(hash uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], hash)
	return xxhash.Sum64(buf[:])
}

package search

import (
	"math/bits"

	"github.com/arnegrim/kestrel/pkg/board"
)

// hintEntrySize is the approximate per-slot footprint used only to size the table
// from a byte budget (Square is a single byte; the occupied flag rounds up to one
// more).
const hintEntrySize = 4

// defaultHintCacheBytes is the component design's "~1 MiB" default size.
const defaultHintCacheBytes = 1 << 20

type hintSlot struct {
	used     bool
	from, to board.Square
}

// HintCache is the best-move hint cache: a direct-mapped table much smaller than the
// transposition table, carrying no hash tag at all. A wrong entry only costs move
// ordering, never correctness, since it is consulted purely to nudge a move to the
// front of an already-complete pseudo-legal list -- so, unlike the transposition
// table, a hash collision here is silently accepted rather than tracked.
type HintCache struct {
	slots []hintSlot
	mask  uint64
}

// NewHintCache builds a hint cache sized from a byte budget; zero picks the
// component design's ~1 MiB default.
func NewHintCache(sizeBytes uint64) *HintCache {
	if sizeBytes == 0 {
		sizeBytes = defaultHintCacheBytes
	}
	n := nextPowerOfTwo(sizeBytes / hintEntrySize)
	if n == 0 {
		n = 1
	}
	return &HintCache{slots: make([]hintSlot, n), mask: n - 1}
}

func (h *HintCache) index(hash board.ZobristHash) uint64 {
	return uint64(hash) & h.mask
}

// Get returns the cached (from, to) for hash, if any.
func (h *HintCache) Get(hash board.ZobristHash) (from, to board.Square, ok bool) {
	slot := h.slots[h.index(hash)]
	if !slot.used {
		return 0, 0, false
	}
	return slot.from, slot.to, true
}

// Put records move's origin and destination as the hint for hash, unconditionally
// overwriting whatever was there -- there is no depth or recency to compare, since
// the slot carries no other metadata.
func (h *HintCache) Put(hash board.ZobristHash, move board.Move) {
	h.slots[h.index(hash)] = hintSlot{used: true, from: move.From, to: move.To}
}

func nextPowerOfTwo(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return 1 << uint(bits.Len64(n-1))
}

package search

import "github.com/arnegrim/kestrel/pkg/board"

// RepetitionHistory is a stack of Zobrist hashes for the positions visited on the
// current search path, from the root down to the current frame. Scoped to one
// traversal -- it is owned by the Stack it rides along with, not the position itself,
// since "how many times has this exact position occurred so far in this search" has
// no meaning outside a single search.
type RepetitionHistory struct {
	hashes []board.ZobristHash
}

func NewRepetitionHistory(capacity int) *RepetitionHistory {
	return &RepetitionHistory{hashes: make([]board.ZobristHash, 0, capacity)}
}

// Reset clears the history, as happens when a new root position is set up.
func (r *RepetitionHistory) Reset() {
	r.hashes = r.hashes[:0]
}

// Push records hash as the position reached by descending one ply.
func (r *RepetitionHistory) Push(hash board.ZobristHash) {
	r.hashes = append(r.hashes, hash)
}

// Pop discards the most recently pushed hash, as happens when ascending back up.
func (r *RepetitionHistory) Pop() {
	r.hashes = r.hashes[:len(r.hashes)-1]
}

// IsThreefold reports whether the current (topmost) hash has occurred at least
// twice before it on the stack, i.e. three times in total -- a threefold repetition
// draw.
func (r *RepetitionHistory) IsThreefold() bool {
	if len(r.hashes) == 0 {
		return false
	}
	current := r.hashes[len(r.hashes)-1]
	count := 0
	for _, h := range r.hashes[:len(r.hashes)-1] {
		if h == current {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

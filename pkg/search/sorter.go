package search

import (
	"sort"

	"github.com/arnegrim/kestrel/pkg/board"
	"github.com/arnegrim/kestrel/pkg/eval"
)

// NewSorter builds the move sorter the iterative-deepening layer installs on every
// frame: the hint cache's move (if any) goes first, then the remainder is stable-
// sorted by MVV-LVA: descending material gain (eval.NominalValueGain, which folds
// in both the captured piece and any promotion), ascending attacking-piece value
// within an equal gain. A plain quiet move has zero gain and keeps the generator's
// order relative to other zero-gain moves.
func NewSorter(hints *HintCache) Sorter {
	return func(pos *board.Position, moves []board.Move) {
		start := 0
		if hints != nil {
			if from, to, ok := hints.Get(pos.Hash()); ok {
				if i := indexOf(moves, from, to); i >= 0 {
					moves[0], moves[i] = moves[i], moves[0]
					start = 1
				}
			}
		}
		sortByMVVLVA(moves[start:])
	}
}

func indexOf(moves []board.Move, from, to board.Square) int {
	for i, m := range moves {
		if m.From == from && m.To == to {
			return i
		}
	}
	return -1
}

func sortByMVVLVA(moves []board.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		gi, gj := eval.NominalValueGain(moves[i]), eval.NominalValueGain(moves[j])
		if gi != gj {
			return gi > gj // most valuable victim (plus promotion gain) first
		}
		if gi == 0 {
			return false // same zero-gain bucket: leave generator order untouched.
		}
		return eval.NominalValue(moves[i].Piece) < eval.NominalValue(moves[j].Piece) // least valuable attacker first
	})
}

// Package search implements the engine's move search: an explicit-stack negamax
// alpha-beta driver with quiescence, iterative deepening with aspiration windows, a
// transposition table, a best-move hint cache, and a repetition-history stack.
package search

import (
	"context"
	"fmt"

	"github.com/arnegrim/kestrel/pkg/board"
)

// Options hold dynamic search options a caller may change between searches.
type Options struct {
	DepthLimit int // 0 == no limit (up to MaxDepth).
}

// Launcher is a search generator: it owns the long-lived transposition table and
// hint cache, and spins off one iterative-deepening run per call.
type Launcher interface {
	// Launch starts a new search from pos and returns a channel of increasingly
	// deep PVs, closed once the search is exhausted, plus a Handle to stop it.
	Launch(ctx context.Context, pos *board.Position, opt Options) (Handle, <-chan PV)
}

// Handle lets a caller manage a launched search from another goroutine.
type Handle interface {
	// Halt stops the search, if running, and returns the last completed PV.
	// Idempotent.
	Halt() PV
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, board.FormatMoves(p.Moves))
}

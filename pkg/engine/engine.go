// Package engine is the programmatic API a front-end binds to: load a position,
// launch or halt a search, run perft, dump the board. It implements exactly the
// operations spec.md §6 names (position/go/go perft/d) without any text-protocol
// dispatch or I/O loop -- those are the excluded front-end's job.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/arnegrim/kestrel/pkg/board"
	"github.com/arnegrim/kestrel/pkg/board/fen"
	"github.com/arnegrim/kestrel/pkg/eval"
	"github.com/arnegrim/kestrel/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(1, 0, 0)

// Engine binds iterative deepening, the transposition table, the hint cache, and
// the loaded position into the one long-lived object a front-end owns for the
// lifetime of a game.
type Engine struct {
	name, author string
	cfg          EngineConfig

	mu     sync.Mutex
	pos    *board.Position
	tt     *search.TranspositionTable
	hints  *search.HintCache
	active search.Handle
}

// New builds an Engine from cfg, starting at the standard initial position.
func New(ctx context.Context, name, author string, cfg EngineConfig) *Engine {
	e := &Engine{
		name:   name,
		author: author,
		cfg:    cfg,
		tt:     search.NewTranspositionTable(cfg.TranspositionTableMB << 20),
		hints:  search.NewHintCache(cfg.HintCacheMB << 20),
	}
	pos, err := fen.Decode(fen.Initial)
	if err != nil {
		panic(err) // fen.Initial is a compile-time constant; decode failure is a bug.
	}
	e.pos = pos

	logw.Infof(ctx, "%v %v by %v", name, version, author)
	return e
}

// LoadPosition resolves the "position" command: start from startFEN (fen.Initial if
// empty or "startpos"), then apply moves in long algebraic notation in order.
// Returns a ParseError for malformed FEN/move text or an IllegalMoveInput for a
// move that cannot be played; the engine's loaded position is unchanged on error.
func (e *Engine) LoadPosition(ctx context.Context, startFEN string, moves ...string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if startFEN == "" || startFEN == "startpos" {
		startFEN = fen.Initial
	}
	pos, err := fen.Decode(startFEN)
	if err != nil {
		return err
	}

	for _, raw := range moves {
		m, err := board.ParseMove(raw)
		if err != nil {
			return err
		}
		resolved, err := board.ResolveMove(pos, m)
		if err != nil {
			return err
		}
		if err := pos.Apply(resolved); err != nil {
			return err
		}
	}

	e.haltLocked()
	e.pos = pos
	logw.Debugf(ctx, "loaded position %v", pos)
	return nil
}

// Go resolves the "go" command: launches iterative deepening over the current
// position from a fresh goroutine and returns a channel of increasingly deep PVs
// plus a Handle to stop it. Halting any previously active search first, since only
// one search may run against the shared transposition table and hint cache at a
// time (spec §5: neither is safe for concurrent mutation).
func (e *Engine) Go(ctx context.Context, opt search.Options) (<-chan search.PV, search.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltLocked()

	evaluator := eval.Evaluator(eval.Material{})
	if e.cfg.NoiseCentipawns > 0 {
		evaluator = eval.WithNoise(evaluator, e.cfg.NoiseCentipawns, int64(e.pos.Hash()))
	}
	if opt.DepthLimit <= 0 {
		opt.DepthLimit = e.cfg.MaxDepth
	}

	launcher := search.NewIterative(e.tt, e.hints, evaluator, e.cfg.QuiescenceEnabled, e.cfg.DetectThreefoldRepetition, e.cfg.AspirationWindow)
	handle, out := launcher.Launch(ctx, e.pos, opt)
	e.active = handle
	return out, handle
}

// Halt resolves the "stop" command: stops the active search, if any, and reports
// its last completed PV. Idempotent; returns the zero PV if nothing was running.
func (e *Engine) Halt() search.PV {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.haltLocked()
}

func (e *Engine) haltLocked() search.PV {
	if e.active == nil {
		return search.PV{}
	}
	pv := e.active.Halt()
	e.active = nil
	return pv
}

// Perft resolves "go perft <n>": enumerates the legal move tree from the current
// position to the given depth, reusing the same traversal stack the search driver
// walks, and reports the per-first-move breakdown and total leaf count.
func (e *Engine) Perft(ctx context.Context, depth int) (search.PerftResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if depth < 0 || depth > search.MaxDepth {
		return search.PerftResult{}, &board.ResourceLimit{Requested: depth, Max: search.MaxDepth}
	}
	return search.Perft(e.pos, depth)
}

// Dump resolves the "d" command: the board diagram, its FEN, and the game result if
// the position is already terminal (checkmate or stalemate).
func (e *Engine) Dump() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := board.GameResult(e.pos)
	if result == board.Undecided {
		return fmt.Sprintf("%v\nFen: %v", e.pos, fen.Encode(e.pos))
	}
	return fmt.Sprintf("%v\nFen: %v\nResult: %v", e.pos, fen.Encode(e.pos), result)
}

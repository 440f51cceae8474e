package search

import (
	"context"
	"sync"
	"time"

	"github.com/arnegrim/kestrel/pkg/board"
	"github.com/arnegrim/kestrel/pkg/eval"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"go.uber.org/atomic"
)

// defaultAspirationWidth is the aspiration-window half-width in centipawns used
// when EngineConfig.AspirationWindow is left at its zero value (spec open
// question: no progressive widening on re-search failure, just a full-window
// retry at the same depth).
const defaultAspirationWidth = 110

// PV represents the principal variation and score found at some completed depth.
type PV struct {
	Depth int
	Moves []board.Move
	Score board.Score
	Nodes uint64
	Time  time.Duration
}

// Iterative is the iterative-deepening harness: it owns the transposition table and
// hint cache across the lifetime of the engine, building a fresh Driver at each
// increasing depth, narrowing to an aspiration window derived from the previous
// depth's score and falling back to the full window when that window fails high or
// low.
type Iterative struct {
	tt              *TranspositionTable
	hints           *HintCache
	evaluator       eval.Evaluator
	quiescence      bool
	repetition      bool
	aspirationWidth int
}

// NewIterative builds an iterative-deepening launcher sharing tt and hints across
// every search it launches. quiescenceEnabled and repetitionEnabled mirror
// EngineConfig's QuiescenceEnabled/DetectThreefoldRepetition knobs; aspirationWidth
// mirrors EngineConfig.AspirationWindow, falling back to defaultAspirationWidth when
// zero.
func NewIterative(tt *TranspositionTable, hints *HintCache, evaluator eval.Evaluator, quiescenceEnabled, repetitionEnabled bool, aspirationWidth int) *Iterative {
	if aspirationWidth <= 0 {
		aspirationWidth = defaultAspirationWidth
	}
	return &Iterative{
		tt:              tt,
		hints:           hints,
		evaluator:       evaluator,
		quiescence:      quiescenceEnabled,
		repetition:      repetitionEnabled,
		aspirationWidth: aspirationWidth,
	}
}

func (it *Iterative) Launch(ctx context.Context, pos *board.Position, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		init: make(chan struct{}),
		quit: make(chan struct{}),
	}
	go h.process(ctx, it, pos, opt, out)
	return h, out
}

type handle struct {
	init, quit        chan struct{}
	initialized, done atomic.Bool

	pv PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, it *Iterative, pos *board.Position, opt Options, out chan PV) {
	defer h.markInitialized()
	defer close(out)

	mover := pos.Turn()
	limit := opt.DepthLimit
	if limit <= 0 || limit > MaxDepth {
		limit = MaxDepth
	}

	alpha, beta := fullWindow(mover)
	aspirating := false

	for depth := 1; depth <= limit; {
		if h.done.Load() {
			return
		}

		stack := NewStack()
		stack.SetupRoot(pos.Clone())
		sorter := NewSorter(it.hints)
		driver := NewDriver(stack, it.tt, sorter, it.evaluator, depth, it.quiescence, it.repetition, alpha, beta)

		start := time.Now()
		for {
			if h.done.Load() {
				return
			}
			status, err := driver.Step(ctx)
			if err != nil {
				logw.Errorf(ctx, "search failed at depth=%v: %v", depth, err)
				return
			}
			if status == Done {
				break
			}
			if contextx.IsCancelled(ctx) {
				break
			}
		}
		elapsed := time.Since(start)
		result := driver.Result()

		if !result.Move.IsValid() {
			if aspirating {
				alpha, beta = fullWindow(mover)
				aspirating = false
				continue // re-search the same depth with the full window
			}
			logw.Infof(ctx, "%v: %v", pos, board.GameResult(pos))
			return // true terminal: checkmate or stalemate at the root
		}

		if aspirating && (result.FailedHigh(mover) || result.FailedLow(mover)) {
			alpha, beta = fullWindow(mover)
			aspirating = false
			continue // narrowed window missed the true score; re-search the same depth
		}

		it.cacheHints(pos, result.PV)

		pv := PV{Depth: depth, Moves: result.PV, Score: result.Score, Nodes: result.Nodes, Time: elapsed}
		logw.Debugf(ctx, "searched %v: %v", pos, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv
		h.markInitialized()

		alpha, beta = result.Score.AspirationWindow(mover, it.aspirationWidth)
		aspirating = true
		depth++
	}
}

// cacheHints populates the best-move hint cache with one (from, to) entry per
// position along pv, replaying the moves from pos to discover each position's hash.
func (it *Iterative) cacheHints(pos *board.Position, pv []board.Move) {
	if it.hints == nil {
		return
	}
	cur := pos.Clone()
	for _, m := range pv {
		it.hints.Put(cur.Hash(), m)
		if err := cur.Apply(m); err != nil {
			return // PV moves are search-internal and always legal; bail out quietly if not.
		}
	}
}

// fullWindow returns the widest possible search window from mover's perspective: the
// worst outcome (mated immediately) to the best (mating immediately), the same
// sentinel pair Score.AspirationWindow falls back to for non-centipawn scores.
func fullWindow(mover board.Color) (board.Score, board.Score) {
	return board.NewMateIn(mover.Opponent(), 0), board.NewMateIn(mover, 0)
}

func (h *handle) Halt() PV {
	<-h.init
	if h.done.CAS(false, true) {
		close(h.quit)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}

func (h *handle) markInitialized() {
	if h.initialized.CAS(false, true) {
		close(h.init)
	}
}

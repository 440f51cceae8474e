package search

import (
	"context"

	"github.com/arnegrim/kestrel/pkg/board"
	"github.com/arnegrim/kestrel/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Status reports whether a Driver has more transitions to perform.
type Status int

const (
	Continue Status = iota
	Done
)

// Result is the outcome a Driver publishes once it reaches Done. Alpha/Beta echo
// back the root search window NewDriver was given, so a caller searching under an
// aspiration window can tell a genuine result from a fail-high/fail-low: Score is
// only a lower bound if it is >= Beta, and only an upper bound if it is <= Alpha.
type Result struct {
	Move  board.Move
	PV    []board.Move
	Score board.Score
	Nodes uint64
	Alpha board.Score
	Beta  board.Score
}

// FailedHigh reports whether Score only establishes a lower bound: the root search
// cut off on a move that already met or beat Beta, without weighing the remaining
// root moves against it.
func (r Result) FailedHigh(mover board.Color) bool {
	return board.Compare(mover, r.Score, r.Beta).IsBetterOrEqual()
}

// FailedLow reports whether Score only establishes an upper bound: no root move
// raised Alpha, so the true score may be lower still.
func (r Result) FailedLow(mover board.Color) bool {
	return !board.Compare(mover, r.Score, r.Alpha).IsBetter()
}

// phase tracks where a frame sits within the per-frame transition sequence: freshly
// entered (leaf test / stand-pat / generate-and-sort not yet done) or iterating its
// move list one child at a time.
type phase uint8

const (
	phaseEnter phase = iota
	phaseIterate
)

// Driver is a negamax alpha-beta search over a Stack, with quiescence extension,
// implemented as a loop over explicit state transitions: each Step call performs
// exactly one transition and returns Continue or Done. This makes the search
// yieldable to a host event loop and cheap to abandon on external cancellation,
// rather than unwinding a native call stack on every return.
type Driver struct {
	stack      *Stack
	tt         *TranspositionTable
	sorter     Sorter
	evaluator  eval.Evaluator
	maxDepth   int
	quiescence bool
	repetition bool
	rootAlpha  board.Score
	rootBeta   board.Score

	nodes uint64

	phases [MaxDepth + 1]phase

	result Result
	done   bool
}

// NewDriver builds a Driver rooted at the stack's current frame, which must already
// have been set up via Stack.SetupRoot. alpha/beta establish the root search window
// (the full window, or an aspiration window from the previous iterative-deepening
// depth). repetitionEnabled toggles the threefold-repetition draw check (spec §4.12);
// disabling it is only useful for perft-style move-count comparisons against
// references that don't apply the rule.
func NewDriver(stack *Stack, tt *TranspositionTable, sorter Sorter, evaluator eval.Evaluator, maxDepth int, quiescenceEnabled, repetitionEnabled bool, alpha, beta board.Score) *Driver {
	root := stack.Current()
	root.Alpha, root.Beta = alpha, beta
	root.EntryAlpha = alpha
	root.Quiescence = false

	return &Driver{
		stack:      stack,
		tt:         tt,
		sorter:     sorter,
		evaluator:  evaluator,
		maxDepth:   maxDepth,
		quiescence: quiescenceEnabled,
		repetition: repetitionEnabled,
		rootAlpha:  alpha,
		rootBeta:   beta,
		phases:     [MaxDepth + 1]phase{phaseEnter},
	}
}

// Result returns the final outcome. Only meaningful once Step has returned Done.
func (d *Driver) Result() Result { return d.result }

// Step performs one state transition and reports whether the driver is finished.
func (d *Driver) Step(ctx context.Context) (Status, error) {
	if d.done {
		return Done, nil
	}
	if contextx.IsCancelled(ctx) {
		frame := d.stack.Current()
		d.finish(frame.BestMove, frame.BestPV, frame.BestScore)
		return Done, nil
	}

	depth := d.stack.Depth()
	frame := d.stack.Current()

	if d.phases[depth] == phaseEnter {
		return d.stepEnter(ctx, depth, frame)
	}
	return d.stepIterate(depth, frame)
}

// remainingDepth is the nominal search depth still owed to frame, clamped at zero;
// used only to size transposition-table entries and judge whether a cached one is
// deep enough to trust.
func (d *Driver) remainingDepth(depth int) int {
	if r := d.maxDepth - depth; r > 0 {
		return r
	}
	return 0
}

// stepEnter runs the transposition probe, the leaf test, the quiescence stand-pat,
// and generate-and-sort-once (transitions 1–3), or resolves a repetition draw
// directly.
func (d *Driver) stepEnter(ctx context.Context, depth int, frame *Frame) (Status, error) {
	if depth > 0 && d.repetition && d.stack.Repetition.IsThreefold() {
		return d.returnFromLeaf(depth, board.NewDrawIn(0))
	}

	if value, storedDepth, ok := d.tt.Probe(frame.Position.Hash()); depth > 0 && ok &&
		value.Kind == Exact && storedDepth >= d.remainingDepth(depth) {
		return d.returnFromLeaf(depth, value.Score)
	}

	danger := d.stack.LazyDanger()

	atHorizon := !frame.Quiescence && depth >= d.maxDepth
	if atHorizon {
		quiet := !danger.Check && (depth == 0 || isQuietMove(frame))
		if quiet || !d.quiescence {
			mover := frame.Position.Turn()
			score := board.NewCentipawns(mover, d.evaluator.Evaluate(ctx, frame.Position))
			d.nodes++
			d.tt.Store(frame.Position.Hash(), 0, NewStaticValue(score))
			return d.returnFromLeaf(depth, score)
		}
		frame.Quiescence = true
	}

	if frame.Quiescence && !danger.Check {
		mover := frame.Position.Turn()
		standPat := board.NewCentipawns(mover, d.evaluator.Evaluate(ctx, frame.Position))
		if board.Compare(mover, standPat, frame.Beta).IsBetterOrEqual() {
			return d.returnFromLeaf(depth, standPat)
		}
		if board.Compare(mover, standPat, frame.Alpha).IsBetter() {
			frame.Alpha = standPat
		}
	}

	// Quiescence searches captures only (capture-promotions to a queen only); no check
	// extensions.
	opts := board.GenOptions{OnlyCaptures: frame.Quiescence, OnlyQueenPromotion: frame.Quiescence}
	d.stack.LazyMoves(opts, d.sorter)
	d.nodes++
	d.phases[depth] = phaseIterate
	return Continue, nil
}

// isQuietMove reports whether the move applied to reach frame was neither a capture
// nor a promotion -- the "last move is quiet" half of the horizon's quiet test.
func isQuietMove(frame *Frame) bool {
	return !frame.Move.Kind.IsCapture() && frame.Move.Promotion == board.NoPiece
}

// stepIterate runs one move of transition 4: push a legal child and descend, skip an
// illegal one, or -- once the move list is exhausted -- resolve the terminal result
// for this frame.
func (d *Driver) stepIterate(depth int, frame *Frame) (Status, error) {
	move, ok := d.stack.NextMove()
	if !ok {
		return d.returnTerminal(depth, frame)
	}

	legal, err := d.stack.SetupChild(move)
	if err != nil {
		d.done = true
		return Done, err
	}
	if !legal {
		return Continue, nil // illegal: NextMove already advanced the cursor.
	}

	d.stack.Push()
	child := d.stack.Current()
	child.Alpha, child.Beta = frame.Beta, frame.Alpha // negamax window swap; Compare's mover argument supplies the sign flip, not arithmetic negation.
	child.EntryAlpha = child.Alpha
	child.Quiescence = frame.Quiescence
	d.phases[depth+1] = phaseEnter
	return Continue, nil
}

// returnFromLeaf resolves a frame with no move iteration at all (a static
// evaluation, a transposition hit, or a repetition draw) and propagates it up.
func (d *Driver) returnFromLeaf(depth int, score board.Score) (Status, error) {
	return d.propagate(depth, score, nil)
}

// returnTerminal resolves a frame whose move list is exhausted: the accumulated
// best-so-far if any move was legal (recorded as Exact or AlphaMiss in the
// transposition table depending on whether it raised alpha), otherwise checkmate,
// stalemate, or -- in quiescence, out of captures -- the stand-pat score.
func (d *Driver) returnTerminal(depth int, frame *Frame) (Status, error) {
	if frame.HasBest {
		hash := frame.Position.Hash()
		rem := d.remainingDepth(depth)
		mover := frame.Position.Turn()
		if board.Compare(mover, frame.BestScore, frame.EntryAlpha).IsBetter() {
			d.tt.Store(hash, rem, NewExactValue(frame.BestScore, frame.BestMove))
		} else {
			d.tt.Store(hash, rem, NewAlphaMissValue(frame.BestScore))
		}
		return d.propagate(depth, frame.BestScore, frame.BestPV)
	}

	mover := frame.Position.Turn()
	danger := d.stack.LazyDanger()
	switch {
	case danger.Check:
		return d.propagate(depth, board.NewMateIn(mover.Opponent(), 0), nil)
	case !frame.Quiescence:
		return d.propagate(depth, board.NewDrawIn(0), nil)
	default:
		score := board.NewCentipawns(mover, d.evaluator.Evaluate(context.Background(), frame.Position))
		return d.propagate(depth, score, nil)
	}
}

// propagate implements transition 5: increment the outgoing score's ply count, fold
// it into the parent frame, and either resume iterating there or -- if it triggers a
// beta cutoff -- keep cascading the same resolution straight up to its own parent,
// since a cutoff frame's result is fully decided without ever revisiting its move
// loop. Reaching the root finishes the search.
func (d *Driver) propagate(depth int, score board.Score, pv []board.Move) (Status, error) {
	for {
		score = score.IncrementPly()
		if depth == 0 {
			d.finish(firstOrInvalid(pv), pv, score)
			return Done, nil
		}

		appliedMove := d.stack.FrameAt(depth).Move

		d.stack.Pop()
		parentDepth := depth - 1
		parent := d.stack.Current()
		mover := parent.Position.Turn()
		fullPV := prepend(appliedMove, pv)

		if board.Compare(mover, score, parent.Beta).IsBetterOrEqual() {
			d.tt.Store(parent.Position.Hash(), d.remainingDepth(parentDepth), NewBetaCutoffValue(score, appliedMove))
			parent.HasBest = true
			parent.BestMove = appliedMove
			parent.BestScore = score
			parent.BestPV = fullPV

			depth = parentDepth
			pv = fullPV
			continue
		}

		if !parent.HasBest || board.Compare(mover, score, parent.BestScore).IsBetter() {
			parent.HasBest = true
			parent.BestMove = appliedMove
			parent.BestScore = score
			parent.BestPV = fullPV
		}
		if board.Compare(mover, score, parent.Alpha).IsBetter() {
			parent.Alpha = score
		}

		d.phases[parentDepth] = phaseIterate
		return Continue, nil
	}
}

func (d *Driver) finish(move board.Move, pv []board.Move, score board.Score) {
	d.result = Result{Move: move, PV: pv, Score: score, Nodes: d.nodes, Alpha: d.rootAlpha, Beta: d.rootBeta}
	d.done = true
}

func prepend(move board.Move, rest []board.Move) []board.Move {
	if !move.IsValid() {
		return rest
	}
	out := make([]board.Move, 0, len(rest)+1)
	out = append(out, move)
	out = append(out, rest...)
	return out
}

func firstOrInvalid(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}

package search

import "github.com/arnegrim/kestrel/pkg/board"

// MaxDepth bounds the traversal stack: the deepest ply the alpha-beta driver may
// descend to, including quiescence. A fixed array rather than a slice keeps the
// per-step cost of push/pop allocation-free.
const MaxDepth = 96

// Sorter orders a frame's pseudo-legal move list in place, once, the first time the
// frame's moves are generated.
type Sorter func(pos *board.Position, moves []board.Move)

// Frame holds one ply's worth of traversal state: the position reached there, the
// move that reached it, lazily-computed danger and move-list caches, the search
// window in force, and the best result found so far at this ply.
type Frame struct {
	Position *board.Position
	Move     board.Move // the move applied to reach this frame; zero (Invalid) at the root.

	dangerCached bool
	danger       board.Danger

	movesCached bool
	moves       []board.Move
	cursor      int

	Quiescence bool
	Alpha      board.Score
	Beta       board.Score
	EntryAlpha board.Score // alpha as handed down before this frame's own moves could raise it; used to tell an Exact result from an AlphaMiss one.

	HasBest   bool
	BestMove  board.Move
	BestScore board.Score
	BestPV    []board.Move
}

// Stack is the fixed-size array of frames the alpha-beta driver traverses. Frame d+1
// is only meaningful while the driver is positioned at depth d; reading it before a
// Push is a bug in the driver, not something Stack itself guards against on every
// access (the hot path stays a plain array index).
type Stack struct {
	frames     [MaxDepth + 1]Frame
	depth      int
	Repetition *RepetitionHistory
}

func NewStack() *Stack {
	return &Stack{Repetition: NewRepetitionHistory(MaxDepth + 1)}
}

// SetupRoot initializes frame 0 from pos and resets the repetition history.
func (s *Stack) SetupRoot(pos *board.Position) {
	s.depth = 0
	s.frames[0] = Frame{Position: pos}
	s.Repetition.Reset()
	s.Repetition.Push(pos.Hash())
}

// Depth returns the current ply, 0 at the root.
func (s *Stack) Depth() int { return s.depth }

// Current borrows the frame the driver is positioned at.
func (s *Stack) Current() *Frame { return &s.frames[s.depth] }

// Parent borrows the frame one ply up, or nil at the root.
func (s *Stack) Parent() *Frame {
	if s.depth == 0 {
		return nil
	}
	return &s.frames[s.depth-1]
}

// FrameAt borrows the frame at the given absolute ply, which must currently be
// populated (at or above the stack's present depth, from an ancestor that has not
// yet been overwritten by a later SetupChild at that same slot).
func (s *Stack) FrameAt(depth int) *Frame {
	return &s.frames[depth]
}

// LazyDanger computes and caches the current frame's Danger.
func (s *Stack) LazyDanger() board.Danger {
	f := s.Current()
	if !f.dangerCached {
		f.danger = board.ComputeDanger(f.Position, f.Position.Turn())
		f.dangerCached = true
	}
	return f.danger
}

// LazyMoves computes and caches the current frame's pseudo-legal move list under
// opts, then sorts it in place with sorter. Later calls with the same frame return
// the cached list untouched -- the sort runs exactly once per frame.
func (s *Stack) LazyMoves(opts board.GenOptions, sorter Sorter) []board.Move {
	f := s.Current()
	if !f.movesCached {
		f.moves = board.GeneratePseudoLegal(f.Position, opts)
		if sorter != nil {
			sorter(f.Position, f.moves)
		}
		f.movesCached = true
		f.cursor = 0
	}
	return f.moves
}

// NextMove advances the cursor over the current frame's sorted move list.
func (s *Stack) NextMove() (board.Move, bool) {
	f := s.Current()
	if f.cursor >= len(f.moves) {
		return board.Move{}, false
	}
	m := f.moves[f.cursor]
	f.cursor++
	return m, true
}

// SetupChild initializes the frame at depth+1 for move: copies the current
// position, applies move, and clears the child's own danger/move caches. Legality
// is checked against the parent's cached danger, per the component design, so this
// never recomputes danger for a move already known illegal. Returns (false, nil)
// if move is illegal or the stack is already at MaxDepth, leaving the stack at the
// current depth. Returns a non-nil error only if Apply reports move as Corrupt --
// a pseudo-legal move from our own generator should never fail to apply, but the
// caller surfaces it as an error rather than panicking.
func (s *Stack) SetupChild(move board.Move) (bool, error) {
	if s.depth+1 >= len(s.frames) {
		return false, nil
	}

	parent := s.Current()
	danger := s.LazyDanger()
	if !board.IsLegal(parent.Position, danger, move) {
		return false, nil
	}

	child := parent.Position.Clone()
	if err := child.Apply(move); err != nil {
		return false, err
	}

	s.frames[s.depth+1] = Frame{Position: child, Move: move}
	return true, nil
}

// Push descends to the child frame set up by SetupChild, recording its hash on the
// repetition history.
func (s *Stack) Push() {
	s.depth++
	s.Repetition.Push(s.Current().Position.Hash())
}

// Pop ascends back to the parent frame, unwinding the repetition history.
func (s *Stack) Pop() {
	s.Repetition.Pop()
	s.depth--
}

// MoveHistory returns the moves applied from the root down to the current frame, in
// order. Used for diagnostics (PV reconstruction from outside the driver, logging).
func (s *Stack) MoveHistory() []board.Move {
	moves := make([]board.Move, 0, s.depth)
	for i := 1; i <= s.depth; i++ {
		moves = append(moves, s.frames[i].Move)
	}
	return moves
}

package board

import "fmt"

// ScoreKind is the closed tag of a Score's variant.
type ScoreKind uint8

const (
	Centipawns ScoreKind = iota
	MateIn
	DrawIn
)

// Score is a tagged union over the three ways a search result is expressed. Centipawns
// is relative to Side; MateIn names the Side that wins, ply moves away; DrawIn only
// carries the ply count (a draw has no side). Comparing two Scores is only meaningful
// from a given mover's perspective — see Compare.
type Score struct {
	Kind ScoreKind
	Side Color // reference side for Centipawns, winning side for MateIn; ignored for DrawIn.
	N    int   // centipawn value for Centipawns, ply count for MateIn/DrawIn.
}

// NewCentipawns builds a Centipawns score from side's perspective.
func NewCentipawns(side Color, cp int) Score {
	return Score{Kind: Centipawns, Side: side, N: cp}
}

// NewMateIn builds a MateIn score: winner mates in ply plies.
func NewMateIn(winner Color, ply int) Score {
	return Score{Kind: MateIn, Side: winner, N: ply}
}

// NewDrawIn builds a DrawIn score, ply moves from the current frame.
func NewDrawIn(ply int) Score {
	return Score{Kind: DrawIn, N: ply}
}

// ZeroScore is a neutral Centipawns(White, 0), used as a Default-equivalent.
var ZeroScore = NewCentipawns(White, 0)

// IncrementPly returns the score with its ply count advanced by one, as happens every
// time a Score crosses a traversal-stack frame boundary on its way back up to the
// root. Centipawns scores are unaffected; only MateIn/DrawIn carry a ply count.
func (s Score) IncrementPly() Score {
	switch s.Kind {
	case MateIn, DrawIn:
		s.N++
	}
	return s
}

func (s Score) String() string {
	switch s.Kind {
	case Centipawns:
		v := s.N
		if s.Side == Black {
			v = -v
		}
		return fmt.Sprintf("%.2f", float64(v)/100)
	case MateIn:
		return fmt.Sprintf("%v wins in %v", s.Side, s.N)
	case DrawIn:
		return fmt.Sprintf("draw in %v", s.N)
	default:
		return "?"
	}
}

// Comparison is the outcome of comparing two Scores from a given mover's perspective.
type Comparison int8

const (
	Equal Comparison = iota
	Better
	Worse
)

func (c Comparison) IsBetterOrEqual() bool { return c == Better || c == Equal }
func (c Comparison) IsBetter() bool        { return c == Better }
func (c Comparison) IsWorse() bool         { return c == Worse }

// comparisonPoints decomposes a Score into (mateComponent, evalComponent) under the
// given mover: mateComponent ranks MateIn-for-us above any centipawn total above any
// MateIn-against-us; evalComponent is the centipawn (or draw-bias) tiebreak within an
// equal mateComponent. Centipawns and DrawIn both have mateComponent 0, so a draw is
// ordered among centipawn scores by its fixed -50 evalComponent. This is the same two-level comparison the rest of the pack's
// chess engines use to give "mate in 2" lexicographic priority over "+9000cp".
func (s Score) comparisonPoints(mover Color) (mate int, eval int) {
	switch s.Kind {
	case Centipawns:
		if s.Side == mover {
			return 0, s.N
		}
		return 0, -s.N
	case MateIn:
		if s.Side == mover {
			return 999999 - s.N, 0
		}
		return -99999 + s.N, 0
	case DrawIn:
		// Chosen draw policy (see package doc / DESIGN.md): a draw is worth
		// approximately "behind by 50 centipawns" to the side on move, so the
		// search only accepts a draw when the alternative is worse than that.
		return 0, -50
	default:
		return 0, 0
	}
}

func (s Score) isDraw() bool {
	return s.Kind == DrawIn
}

// Compare orders left vs. right from mover's perspective: Better means left is
// preferable to mover, Worse the opposite, Equal a tie. Total: every pair of Scores
// compares, and Compare(mover, a, b) == Better iff Compare(mover, b, a) == Worse.
func Compare(mover Color, left, right Score) Comparison {
	lm, le := left.comparisonPoints(mover)
	rm, re := right.comparisonPoints(mover)

	switch {
	case lm > rm:
		return Better
	case lm < rm:
		return Worse
	case le > re:
		return Better
	case le < re:
		return Worse
	default:
		return Equal
	}
}

// AspirationWindow returns the (alpha, beta) window to search at the next depth given
// this depth's final score s, narrowed by width centipawns around s from forPlayer's
// perspective. Mate/draw scores widen to an always-valid full window instead, since a
// centipawn offset around a mate score is meaningless.
func (s Score) AspirationWindow(forPlayer Color, width int) (Score, Score) {
	if s.Kind == Centipawns {
		offset := width
		if s.Side != forPlayer {
			offset = -width
		}
		return NewCentipawns(s.Side, s.N-offset), NewCentipawns(s.Side, s.N+offset)
	}
	return NewMateIn(forPlayer.Opponent(), 0), NewMateIn(forPlayer, 0)
}

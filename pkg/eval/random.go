package eval

import (
	"context"
	"math/rand"

	"github.com/arnegrim/kestrel/pkg/board"
)

// Random adds a small amount of noise to an evaluation, in the range
// [-limit/2; limit/2] centipawns. A zero limit always returns zero: the evaluator
// itself stays deterministic per the component design, and this term is only ever
// layered on top by a caller that explicitly wants de-duplicated self-play games.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate(ctx context.Context, pos *board.Position) int {
	if n.limit <= 0 {
		return 0
	}
	return n.rand.Intn(n.limit) - n.limit/2
}

// noisy layers Random noise on top of a deterministic base Evaluator. The base stays
// reusable and equal-position-deterministic on its own; only the composed evaluator
// a caller explicitly opts into loses that property.
type noisy struct {
	base  Evaluator
	noise Random
}

// WithNoise composes base with a Random noise term, per the component design's note
// that noise is a search/engine-level perturbation layered on top of evaluation, not
// part of the deterministic evaluator itself. A zero-limit noise is a no-op.
func WithNoise(base Evaluator, limit int, seed int64) Evaluator {
	return noisy{base: base, noise: NewRandom(limit, seed)}
}

func (n noisy) Evaluate(ctx context.Context, pos *board.Position) int {
	return n.base.Evaluate(ctx, pos) + n.noise.Evaluate(ctx, pos)
}

package eval_test

import (
	"context"
	"testing"

	"github.com/arnegrim/kestrel/pkg/board/fen"
	"github.com/arnegrim/kestrel/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomZeroLimitIsAlwaysZero(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	n := eval.NewRandom(0, 1)
	for i := 0; i < 10; i++ {
		assert.Equal(t, 0, n.Evaluate(context.Background(), p))
	}
}

func TestRandomNegativeLimitIsAlwaysZero(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	n := eval.NewRandom(-5, 1)
	assert.Equal(t, 0, n.Evaluate(context.Background(), p))
}

func TestRandomStaysWithinBounds(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	n := eval.NewRandom(40, 99)
	for i := 0; i < 500; i++ {
		v := n.Evaluate(context.Background(), p)
		assert.GreaterOrEqual(t, v, -20)
		assert.Less(t, v, 20)
	}
}

func TestRandomIsDeterministicForAFixedSeed(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	a := eval.NewRandom(100, 7)
	b := eval.NewRandom(100, 7)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Evaluate(context.Background(), p), b.Evaluate(context.Background(), p))
	}
}

func TestWithNoiseZeroLimitMatchesBase(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	base := eval.Material{}
	noisy := eval.WithNoise(base, 0, 1)
	assert.Equal(t, base.Evaluate(context.Background(), p), noisy.Evaluate(context.Background(), p))
}

func TestWithNoiseAddsBoundedOffset(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	base := eval.Material{}
	baseScore := base.Evaluate(context.Background(), p)
	noisy := eval.WithNoise(base, 20, 3)

	for i := 0; i < 100; i++ {
		v := noisy.Evaluate(context.Background(), p)
		assert.GreaterOrEqual(t, v, baseScore-10)
		assert.Less(t, v, baseScore+10)
	}
}

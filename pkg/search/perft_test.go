package search_test

import (
	"testing"

	"github.com/arnegrim/kestrel/pkg/board/fen"
	"github.com/arnegrim/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerftInitialPosition(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	want := []uint64{1, 20, 400, 8902, 197281}
	for depth, total := range want {
		result, err := search.Perft(pos, depth)
		require.NoError(t, err)
		assert.Equal(t, total, result.Total, "depth=%v", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	pos, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	want := []uint64{1, 48, 2039, 97862}
	for depth, total := range want {
		result, err := search.Perft(pos, depth)
		require.NoError(t, err)
		assert.Equal(t, total, result.Total, "depth=%v", depth)
	}
}

func TestPerftEndgame(t *testing.T) {
	pos, err := fen.Decode("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	require.NoError(t, err)

	want := []uint64{1, 14, 191, 2812}
	for depth, total := range want {
		result, err := search.Perft(pos, depth)
		require.NoError(t, err)
		assert.Equal(t, total, result.Total, "depth=%v", depth)
	}
}

func TestPerftDivideSumsToTotal(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	result, err := search.Perft(pos, 3)
	require.NoError(t, err)

	var sum uint64
	for _, count := range result.Divide {
		sum += count
	}
	assert.Equal(t, result.Total, sum)
	assert.Len(t, result.Divide, 20)
}

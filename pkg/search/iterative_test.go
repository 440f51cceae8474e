package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/arnegrim/kestrel/pkg/board/fen"
	"github.com/arnegrim/kestrel/pkg/eval"
	"github.com/arnegrim/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestIterativeDeepensAndStopsAtDepthLimit(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	assert.NoError(t, err)

	tt := search.NewTranspositionTable(1 << 20)
	hints := search.NewHintCache(1 << 16)
	it := search.NewIterative(tt, hints, eval.Material{}, true, true, 110)

	_, out := it.Launch(context.Background(), pos, search.Options{DepthLimit: 3})

	var last search.PV
	for pv := range out {
		assert.GreaterOrEqual(t, pv.Depth, last.Depth)
		last = pv
	}
	assert.Equal(t, 3, last.Depth)
	assert.True(t, last.Moves[0].IsValid())
}

func TestIterativeHaltReturnsLastCompletedPV(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	assert.NoError(t, err)

	tt := search.NewTranspositionTable(1 << 20)
	hints := search.NewHintCache(1 << 16)
	it := search.NewIterative(tt, hints, eval.Material{}, true, true, 110)

	handle, out := it.Launch(context.Background(), pos, search.Options{DepthLimit: search.MaxDepth})

	select {
	case <-out:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for first PV")
	}

	pv := handle.Halt()
	assert.True(t, pv.Moves[0].IsValid())
	// Idempotent.
	assert.Equal(t, pv, handle.Halt())
}

func TestIterativeReportsNoMoveAtCheckmate(t *testing.T) {
	pos, err := fen.Decode("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	assert.NoError(t, err)

	tt := search.NewTranspositionTable(1 << 20)
	hints := search.NewHintCache(1 << 16)
	it := search.NewIterative(tt, hints, eval.Material{}, true, true, 110)

	_, out := it.Launch(context.Background(), pos, search.Options{DepthLimit: 4})

	count := 0
	for range out {
		count++
	}
	assert.Equal(t, 0, count)
}

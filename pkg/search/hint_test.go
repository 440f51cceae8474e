package search_test

import (
	"testing"

	"github.com/arnegrim/kestrel/pkg/board"
	"github.com/arnegrim/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestHintCacheMissByDefault(t *testing.T) {
	h := search.NewHintCache(1 << 12)
	_, _, ok := h.Get(board.ZobristHash(1))
	assert.False(t, ok)
}

func TestHintCachePutThenGet(t *testing.T) {
	h := search.NewHintCache(1 << 12)
	move := board.Move{Kind: board.Quiet, From: board.E2, To: board.E4}

	h.Put(board.ZobristHash(9), move)

	from, to, ok := h.Get(board.ZobristHash(9))
	assert.True(t, ok)
	assert.Equal(t, move.From, from)
	assert.Equal(t, move.To, to)
}

func TestHintCacheUnconditionalOverwrite(t *testing.T) {
	h := search.NewHintCache(1 << 12)
	a := board.Move{Kind: board.Quiet, From: board.E2, To: board.E4}
	b := board.Move{Kind: board.Quiet, From: board.D2, To: board.D4}

	h.Put(board.ZobristHash(1), a)
	h.Put(board.ZobristHash(1), b)

	from, to, ok := h.Get(board.ZobristHash(1))
	assert.True(t, ok)
	assert.Equal(t, b.From, from)
	assert.Equal(t, b.To, to)
}

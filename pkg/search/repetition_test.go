package search_test

import (
	"testing"

	"github.com/arnegrim/kestrel/pkg/board"
	"github.com/arnegrim/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestRepetitionHistoryNotThreefoldOnFirstOccurrence(t *testing.T) {
	r := search.NewRepetitionHistory(8)
	r.Push(board.ZobristHash(1))
	assert.False(t, r.IsThreefold())
}

func TestRepetitionHistoryThreefoldOnThirdOccurrence(t *testing.T) {
	r := search.NewRepetitionHistory(8)
	r.Push(board.ZobristHash(1))
	r.Push(board.ZobristHash(2))
	r.Push(board.ZobristHash(1))
	assert.False(t, r.IsThreefold())

	r.Push(board.ZobristHash(3))
	r.Push(board.ZobristHash(1))
	assert.True(t, r.IsThreefold())
}

func TestRepetitionHistoryPopUnwinds(t *testing.T) {
	r := search.NewRepetitionHistory(8)
	r.Push(board.ZobristHash(1))
	r.Push(board.ZobristHash(1))
	r.Push(board.ZobristHash(1))
	assert.True(t, r.IsThreefold())

	r.Pop()
	assert.False(t, r.IsThreefold())
}

func TestRepetitionHistoryResetClears(t *testing.T) {
	r := search.NewRepetitionHistory(8)
	r.Push(board.ZobristHash(1))
	r.Push(board.ZobristHash(1))
	r.Push(board.ZobristHash(1))
	r.Reset()
	r.Push(board.ZobristHash(1))
	assert.False(t, r.IsThreefold())
}

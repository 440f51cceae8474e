package board_test

import (
	"testing"

	"github.com/arnegrim/kestrel/pkg/board"
	"github.com/arnegrim/kestrel/pkg/board/fen"
	"github.com/stretchr/testify/assert"
)

func TestZobristHashStableAcrossMoveOrder(t *testing.T) {
	start, err := fen.Decode(fen.Initial)
	assert.NoError(t, err)

	// 1. e4 Nc6 2. Nf3 Nf6 and 1. Nf3 Nc6 2. e4 Nf6 reach the same position.
	p1 := start.Clone()
	m1, err := board.ResolveMove(p1, board.Move{From: board.E2, To: board.E4})
	assert.NoError(t, err)
	assert.NoError(t, p1.Apply(m1))
	m2, err := board.ResolveMove(p1, board.Move{From: board.B8, To: board.C6})
	assert.NoError(t, err)
	assert.NoError(t, p1.Apply(m2))
	m3, err := board.ResolveMove(p1, board.Move{From: board.G1, To: board.F3})
	assert.NoError(t, err)
	assert.NoError(t, p1.Apply(m3))
	m4, err := board.ResolveMove(p1, board.Move{From: board.G8, To: board.F6})
	assert.NoError(t, err)
	assert.NoError(t, p1.Apply(m4))

	p2 := start.Clone()
	n1, err := board.ResolveMove(p2, board.Move{From: board.G1, To: board.F3})
	assert.NoError(t, err)
	assert.NoError(t, p2.Apply(n1))
	n2, err := board.ResolveMove(p2, board.Move{From: board.B8, To: board.C6})
	assert.NoError(t, err)
	assert.NoError(t, p2.Apply(n2))
	n3, err := board.ResolveMove(p2, board.Move{From: board.E2, To: board.E4})
	assert.NoError(t, err)
	assert.NoError(t, p2.Apply(n3))
	n4, err := board.ResolveMove(p2, board.Move{From: board.G8, To: board.F6})
	assert.NoError(t, err)
	assert.NoError(t, p2.Apply(n4))

	assert.Equal(t, p1.Hash(), p2.Hash())
}

func TestZobristHashDiffersOnCastlingRights(t *testing.T) {
	table := board.NewZobristTable(1)

	withRights, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)
	withoutRights, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")
	assert.NoError(t, err)

	assert.NotEqual(t, table.Hash(withRights), table.Hash(withoutRights))
}

func TestZobristHashDiffersOnEnPassantFile(t *testing.T) {
	table := board.NewZobristTable(1)

	a, err := fen.Decode("4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	assert.NoError(t, err)
	b, err := fen.Decode("4k3/8/8/8/3pP3/8/8/4K3 b - - 0 1")
	assert.NoError(t, err)

	assert.NotEqual(t, table.Hash(a), table.Hash(b))
}

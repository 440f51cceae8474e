package search_test

import (
	"testing"

	"github.com/arnegrim/kestrel/pkg/board"
	"github.com/arnegrim/kestrel/pkg/board/fen"
	"github.com/arnegrim/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestSorterPutsHintMoveFirst(t *testing.T) {
	hints := search.NewHintCache(1 << 12)
	pos, err := fen.Decode(fen.Initial)
	assert.NoError(t, err)

	hinted := board.Move{Kind: board.Quiet, From: board.G1, To: board.F3}
	hints.Put(pos.Hash(), hinted)

	moves := []board.Move{
		{Kind: board.Quiet, From: board.A2, To: board.A3},
		hinted,
		{Kind: board.Quiet, From: board.B2, To: board.B3},
	}

	search.NewSorter(hints)(pos, moves)
	assert.True(t, moves[0].Equals(hinted))
}

func TestSorterOrdersCapturesByMVVLVA(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	assert.NoError(t, err)

	// A capture of a queen outranks one of a pawn (MVV), and among captures of the
	// same victim, the cheaper attacker sorts first (LVA): a pawn-takes-queen leads
	// a bishop-takes-queen.
	pawnTakesQueen := board.Move{Kind: board.Capture, Piece: board.Pawn, Capture: board.Queen}
	bishopTakesQueen := board.Move{Kind: board.Capture, Piece: board.Bishop, Capture: board.Queen}
	pawnTakesPawn := board.Move{Kind: board.Capture, Piece: board.Pawn, Capture: board.Pawn}

	moves := []board.Move{pawnTakesPawn, bishopTakesQueen, pawnTakesQueen}
	search.NewSorter(nil)(pos, moves)

	assert.Equal(t, pawnTakesQueen, moves[0])
	assert.Equal(t, bishopTakesQueen, moves[1])
	assert.Equal(t, pawnTakesPawn, moves[2])
}

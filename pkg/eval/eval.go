// Package eval contains static position evaluation.
package eval

import (
	"context"

	"github.com/arnegrim/kestrel/pkg/board"
)

// Evaluator is a static position evaluator: a centipawn score from the side to
// move's perspective, with no search of its own.
type Evaluator interface {
	Evaluate(ctx context.Context, pos *board.Position) int
}

// lateGameLossThreshold and lateGamePieceThreshold together define "late game" per
// the component design: either side down at least this much material from its
// starting total, or the two sides together missing at least this many non-king
// pieces.
const (
	lateGameLossThreshold  = 800
	lateGamePieceThreshold = 6
)

// startingNonKingMaterial is each side's total nominal material at the initial
// position, excluding the king.
var startingNonKingMaterial = 8*NominalValue(board.Pawn) + 2*NominalValue(board.Knight) +
	2*NominalValue(board.Bishop) + 2*NominalValue(board.Rook) + NominalValue(board.Queen)

// Material is a stage-aware material + piece-square + center-pawn evaluator,
// computed from scratch every call (no incremental state) so that equal positions
// always produce equal scores.
type Material struct{}

func (Material) Evaluate(ctx context.Context, pos *board.Position) int {
	turn := pos.Turn()
	late := isLateGame(pos)

	score := materialBalance(pos) + pieceSquareBalance(pos, late)
	if !late {
		score += centerPawnBonus(pos, board.White) - centerPawnBonus(pos, board.Black)
	}

	if turn == board.Black {
		score = -score
	}
	return score
}

// isLateGame implements the component design's two-way late-game test.
func isLateGame(pos *board.Position) bool {
	if materialOf(pos, board.White) <= startingNonKingMaterial-lateGameLossThreshold {
		return true
	}
	if materialOf(pos, board.Black) <= startingNonKingMaterial-lateGameLossThreshold {
		return true
	}

	missing := 0
	for _, piece := range []board.Piece{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen} {
		start := startingCount(piece)
		missing += start - pos.Bitboard(board.White, piece).PopCount()
		missing += start - pos.Bitboard(board.Black, piece).PopCount()
	}
	return missing >= lateGamePieceThreshold
}

func startingCount(piece board.Piece) int {
	switch piece {
	case board.Pawn:
		return 8
	case board.Knight, board.Bishop, board.Rook:
		return 2
	case board.Queen:
		return 1
	default:
		return 0
	}
}

func materialOf(pos *board.Position, side board.Color) int {
	total := 0
	for _, piece := range []board.Piece{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen} {
		total += pos.Bitboard(side, piece).PopCount() * NominalValue(piece)
	}
	return total
}

// materialBalance returns White's material total minus Black's, in centipawns. The
// king (NominalValue 2000) never enters here -- every legal position has exactly one
// per side, so its material term always cancels; NominalValue(King) exists only as a
// sentinel for NominalValueGain and other callers that iterate over all piece kinds.
func materialBalance(pos *board.Position) int {
	return materialOf(pos, board.White) - materialOf(pos, board.Black)
}

func pieceSquareBalance(pos *board.Position, late bool) int {
	total := 0
	for _, piece := range []board.Piece{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King} {
		table := pieceSquareTable(piece, late)
		for _, sq := range pos.Bitboard(board.White, piece).Squares() {
			total += table.at(sq, board.White)
		}
		for _, sq := range pos.Bitboard(board.Black, piece).Squares() {
			total -= table.at(sq, board.Black)
		}
	}
	return total
}

// centerPawnBonus rewards d/e-file pawns that have advanced into the first three
// ranks from side's own baseline, early game only.
func centerPawnBonus(pos *board.Position, side board.Color) int {
	pawns := pos.Bitboard(side, board.Pawn)
	centerFiles := board.BitFile(board.FileD) | board.BitFile(board.FileE)

	var nearRanks board.Bitboard
	if side == board.White {
		nearRanks = board.BitRank(board.Rank2) | board.BitRank(board.Rank3) | board.BitRank(board.Rank4)
	} else {
		nearRanks = board.BitRank(board.Rank7) | board.BitRank(board.Rank6) | board.BitRank(board.Rank5)
	}

	return (pawns & centerFiles & nearRanks).PopCount() * 10
}

// NominalValue is the absolute material value in centipawns of a piece kind. The
// king's value is a sentinel only -- kings are never absent from a legal position.
func NominalValue(p board.Piece) int {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 2000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of playing m (captured piece plus
// any promotion bonus), used by the move sorter's MVV-LVA ordering.
func NominalValueGain(m board.Move) int {
	gain := NominalValue(m.Capture)
	if m.Promotion != board.NoPiece {
		gain += NominalValue(m.Promotion) - NominalValue(board.Pawn)
	}
	return gain
}

// Package fen contains utilities for reading and writing positions in FEN notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/arnegrim/kestrel/pkg/board"
)

// Initial is the FEN for the standard starting position, the expansion of "startpos".
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a Position. A FEN has six whitespace-separated
// fields; trailing fields may be omitted, defaulting to no en-passant, zero halfmove
// clock and fullmove one.
//
// Example: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(fen string) (*board.Position, error) {
	parts := strings.Fields(strings.TrimSpace(fen))
	if len(parts) < 1 {
		return nil, &board.ParseError{Text: fen, Why: "empty FEN"}
	}
	for len(parts) < 6 {
		switch len(parts) {
		case 1:
			parts = append(parts, "w")
		case 2:
			parts = append(parts, "-")
		case 3:
			parts = append(parts, "-")
		case 4:
			parts = append(parts, "0")
		case 5:
			parts = append(parts, "1")
		}
	}

	// (1) Piece placement, from rank 8 down to rank 1, each rank from file a to h.

	var pieces []board.Placement

	r, f := board.Rank8, board.ZeroFile
	for _, ch := range parts[0] {
		switch {
		case ch == '/':
			if f != board.NumFiles {
				return nil, &board.ParseError{Text: fen, Why: "short rank"}
			}
			if r == board.ZeroRank {
				return nil, &board.ParseError{Text: fen, Why: "too many ranks"}
			}
			r--
			f = board.ZeroFile

		case unicode.IsDigit(ch):
			f += board.File(ch - '0')

		case unicode.IsLetter(ch):
			color, piece, ok := parsePiece(ch)
			if !ok {
				return nil, &board.ParseError{Text: fen, Why: fmt.Sprintf("invalid piece '%v'", ch)}
			}
			if f >= board.NumFiles {
				return nil, &board.ParseError{Text: fen, Why: "long rank"}
			}
			pieces = append(pieces, board.Placement{Square: board.NewSquare(f, r), Color: color, Piece: piece})
			f++

		default:
			return nil, &board.ParseError{Text: fen, Why: fmt.Sprintf("invalid character '%v'", ch)}
		}
	}
	if r != board.ZeroRank || f != board.NumFiles {
		return nil, &board.ParseError{Text: fen, Why: "invalid number of squares"}
	}

	// (2) Active color.

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, &board.ParseError{Text: fen, Why: "invalid active color"}
	}

	// (3) Castling availability.

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, &board.ParseError{Text: fen, Why: "invalid castling"}
	}

	// (4) En passant target square.

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, &board.ParseError{Text: fen, Why: "invalid en passant"}
		}
		ep = sq
	}

	// (5) Halfmove clock.

	half, err := strconv.Atoi(parts[4])
	if err != nil || half < 0 {
		return nil, &board.ParseError{Text: fen, Why: "invalid halfmove clock"}
	}

	// (6) Fullmove number.

	full, err := strconv.Atoi(parts[5])
	if err != nil || full < 1 {
		return nil, &board.ParseError{Text: fen, Why: "invalid fullmove number"}
	}

	pos, err := board.NewPosition(pieces, turn, castling, ep, half, full)
	if err != nil {
		return nil, &board.ParseError{Text: fen, Why: err.Error()}
	}
	return pos, nil
}

// Encode renders a position in FEN notation.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for r := board.Rank8; ; r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := pos.PieceAt(board.NewSquare(f, r))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r == board.ZeroRank {
			break
		}
		sb.WriteString("/")
	}

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), printColor(pos.Turn()), printCastling(pos.Castling()), ep, pos.Halfmove(), pos.Fullmove())
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling
	if str == "-" {
		return ret, true
	}
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	if c == 0 {
		return "-"
	}
	ret := ""
	if c.IsAllowed(board.WhiteKingSideCastle) {
		ret += "K"
	}
	if c.IsAllowed(board.WhiteQueenSideCastle) {
		ret += "Q"
	}
	if c.IsAllowed(board.BlackKingSideCastle) {
		ret += "k"
	}
	if c.IsAllowed(board.BlackQueenSideCastle) {
		ret += "q"
	}
	return ret
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	switch r {
	case 'P':
		return board.White, board.Pawn, true
	case 'B':
		return board.White, board.Bishop, true
	case 'N':
		return board.White, board.Knight, true
	case 'R':
		return board.White, board.Rook, true
	case 'Q':
		return board.White, board.Queen, true
	case 'K':
		return board.White, board.King, true

	case 'p':
		return board.Black, board.Pawn, true
	case 'b':
		return board.Black, board.Bishop, true
	case 'n':
		return board.Black, board.Knight, true
	case 'r':
		return board.Black, board.Rook, true
	case 'q':
		return board.Black, board.Queen, true
	case 'k':
		return board.Black, board.King, true

	default:
		return 0, 0, false
	}
}

func printPiece(c board.Color, p board.Piece) rune {
	if c == board.White {
		switch p {
		case board.Pawn:
			return 'P'
		case board.Bishop:
			return 'B'
		case board.Knight:
			return 'N'
		case board.Rook:
			return 'R'
		case board.Queen:
			return 'Q'
		case board.King:
			return 'K'
		default:
			return '?'
		}
	}
	switch p {
	case board.Pawn:
		return 'p'
	case board.Bishop:
		return 'b'
	case board.Knight:
		return 'n'
	case board.Rook:
		return 'r'
	case board.Queen:
		return 'q'
	case board.King:
		return 'k'
	default:
		return '?'
	}
}

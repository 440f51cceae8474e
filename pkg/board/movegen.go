package board

// GenOptions narrows move generation, used by quiescence search.
type GenOptions struct {
	OnlyCaptures       bool // skip quiet moves.
	OnlyQueenPromotion bool // emit only the queen variant of each promotion.
}

// promotionPieces is the full set of pieces a pawn may promote to.
var promotionPieces = []Piece{Queen, Rook, Bishop, Knight}

// GeneratePseudoLegal enumerates candidate moves for the side to move in p, without
// filtering for legality (a pseudo-legal move may leave its own king in check; see
// IsLegal). Ordering is unspecified -- callers always sort afterwards.
func GeneratePseudoLegal(p *Position, opts GenOptions) []Move {
	var moves []Move
	side := p.turn
	self := p.Occupancy(side)
	enemy := p.Occupancy(side.Opponent())
	all := self | enemy

	moves = genPawnMoves(p, side, all, enemy, opts, moves)
	moves = genLeaperMoves(p, side, Knight, KnightAttackboard, self, enemy, opts, moves)
	moves = genLeaperMoves(p, side, King, KingAttackboard, self, enemy, opts, moves)
	moves = genSliderMoves(p, side, Bishop, self, enemy, all, opts, moves)
	moves = genSliderMoves(p, side, Rook, self, enemy, all, opts, moves)
	moves = genSliderMoves(p, side, Queen, self, enemy, all, opts, moves)
	if !opts.OnlyCaptures {
		moves = genCastlingMoves(p, side, all, moves)
	}
	return moves
}

func genPawnMoves(p *Position, side Color, all, enemy Bitboard, opts GenOptions, moves []Move) []Move {
	pawns := p.Bitboard(side, Pawn)
	promoRank := PawnPromotionRank(side)
	promos := promotionPieces
	if opts.OnlyQueenPromotion {
		promos = promos[:1]
	}

	addMove := func(kind MoveKind, from, to Square, capture Piece) {
		if promoRank.IsSet(to) {
			for _, promo := range promos {
				moves = append(moves, Move{Kind: kind, From: from, To: to, Side: side, Piece: Pawn, Promotion: promo, Capture: capture})
			}
			return
		}
		moves = append(moves, Move{Kind: kind, From: from, To: to, Side: side, Piece: Pawn, Capture: capture})
	}

	if !opts.OnlyCaptures {
		pushes := PawnPushboard(all, side, pawns)
		for bb := pushes; bb != 0; {
			var to Square
			to, bb = bb.PopLSB()
			from := to
			if side == White {
				from -= Square(North)
			} else {
				from += Square(North)
			}
			addMove(Quiet, from, to, NoPiece)
		}

		jumpStart := pawns & BitRank(PawnStartRank(side))
		single := PawnPushboard(all, side, jumpStart)
		double := PawnPushboard(all, side, single) & PawnJumpRank(side)
		for bb := double; bb != 0; {
			var to Square
			to, bb = bb.PopLSB()
			var from, passed Square
			if side == White {
				from = to - Square(2*North)
				passed = to - Square(North)
			} else {
				from = to + Square(2*North)
				passed = to + Square(North)
			}
			moves = append(moves, Move{Kind: PawnSkip, From: from, To: to, Side: side, Piece: Pawn, PassedSquare: passed})
		}
	}

	captures := PawnCaptureboard(side, pawns) & enemy
	for bb := captures; bb != 0; {
		var to Square
		to, bb = bb.PopLSB()
		sources := PawnCaptureboard(side.Opponent(), BitMask(to)) & pawns
		for s := sources; s != 0; {
			var from Square
			from, s = s.PopLSB()
			_, capturedPiece, _ := p.PieceAt(to)
			addMove(Capture, from, to, capturedPiece)
		}
	}

	if ep, ok := p.EnPassant(); ok {
		sources := PawnCaptureboard(side.Opponent(), BitMask(ep)) & pawns
		for s := sources; s != 0; {
			var from Square
			from, s = s.PopLSB()
			captured := ep
			if side == White {
				captured -= Square(North)
			} else {
				captured += Square(North)
			}
			moves = append(moves, Move{Kind: EnPassant, From: from, To: ep, Side: side, Piece: Pawn, Capture: Pawn, CapturedSquare: captured})
		}
	}

	return moves
}

func genLeaperMoves(p *Position, side Color, piece Piece, attacks func(Square) Bitboard, self, enemy Bitboard, opts GenOptions, moves []Move) []Move {
	origins := p.Bitboard(side, piece)
	for o := origins; o != 0; {
		var from Square
		from, o = o.PopLSB()

		reach := attacks(from) &^ self
		captures := reach & enemy
		for bb := captures; bb != 0; {
			var to Square
			to, bb = bb.PopLSB()
			_, capturedPiece, _ := p.PieceAt(to)
			moves = append(moves, Move{Kind: Capture, From: from, To: to, Side: side, Piece: piece, Capture: capturedPiece})
		}
		if !opts.OnlyCaptures {
			quiets := reach &^ enemy
			for bb := quiets; bb != 0; {
				var to Square
				to, bb = bb.PopLSB()
				moves = append(moves, Move{Kind: Quiet, From: from, To: to, Side: side, Piece: piece})
			}
		}
	}
	return moves
}

func genSliderMoves(p *Position, side Color, piece Piece, self, enemy, all Bitboard, opts GenOptions, moves []Move) []Move {
	origins := p.Bitboard(side, piece)
	for o := origins; o != 0; {
		var from Square
		from, o = o.PopLSB()

		reach := Attackboard(piece, from, all) &^ self
		captures := reach & enemy
		for bb := captures; bb != 0; {
			var to Square
			to, bb = bb.PopLSB()
			_, capturedPiece, _ := p.PieceAt(to)
			moves = append(moves, Move{Kind: Capture, From: from, To: to, Side: side, Piece: piece, Capture: capturedPiece})
		}
		if !opts.OnlyCaptures {
			quiets := reach &^ enemy
			for bb := quiets; bb != 0; {
				var to Square
				to, bb = bb.PopLSB()
				moves = append(moves, Move{Kind: Quiet, From: from, To: to, Side: side, Piece: piece})
			}
		}
	}
	return moves
}

type castlingSpec struct {
	right              Castling
	kingFrom, kingTo   Square
	rookFrom, rookTo   Square
	between            Bitboard
	kingPath           [3]Square
}

var castlingSpecs = map[Color][2]castlingSpec{
	White: {
		{WhiteKingSideCastle, E1, G1, H1, F1, BitMask(F1) | BitMask(G1), [3]Square{E1, F1, G1}},
		{WhiteQueenSideCastle, E1, C1, A1, D1, BitMask(B1) | BitMask(C1) | BitMask(D1), [3]Square{E1, D1, C1}},
	},
	Black: {
		{BlackKingSideCastle, E8, G8, H8, F8, BitMask(F8) | BitMask(G8), [3]Square{E8, F8, G8}},
		{BlackQueenSideCastle, E8, C8, A8, D8, BitMask(B8) | BitMask(C8) | BitMask(D8), [3]Square{E8, D8, C8}},
	},
}

// ResolveMove looks up the fully-tagged, legal Move matching raw (from/to/promotion),
// as parsed from a bare coordinate string such as "e7e8q" by ParseMove. Returns
// IllegalMoveInput if no legal move in p matches.
func ResolveMove(p *Position, raw Move) (Move, error) {
	d := ComputeDanger(p, p.Turn())
	for _, m := range GeneratePseudoLegal(p, GenOptions{}) {
		if m.Equals(raw) && IsLegal(p, d, m) {
			return m, nil
		}
	}
	return Move{}, &IllegalMoveInput{FEN: p.String(), Move: raw.String()}
}

func genCastlingMoves(p *Position, side Color, all Bitboard, moves []Move) []Move {
	for _, spec := range castlingSpecs[side] {
		if !p.castling.IsAllowed(spec.right) {
			continue
		}
		if spec.between&all != 0 {
			continue
		}
		attacked := false
		for _, sq := range spec.kingPath {
			if IsAttacked(p, side, sq) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}
		moves = append(moves, Move{
			Kind: Castle, From: spec.kingFrom, To: spec.kingTo, Side: side, Piece: King,
			RookFrom: spec.rookFrom, RookTo: spec.rookTo,
		})
	}
	return moves
}

package boardrules

import "github.com/guo-vincent/Classical-Chess-Engine/rules"

// LegalMoves implements rules.Position: returns every fully legal
// move available to the side to move.
func (p *Position) LegalMoves() *rules.MoveList {
	pseudo := p.generatePseudoLegal()
	return p.filterLegal(pseudo)
}

// MoveKind implements rules.Position.
func (p *Position) MoveKind(m rules.Move) rules.MoveKind {
	if m.IsCastling() {
		return rules.Castle
	}
	if m.IsEnPassant() {
		return rules.EnPassant
	}
	if m.IsPromotion() {
		return rules.Promotion
	}
	if p.PieceAt(m.To()) != rules.NoPiece {
		return rules.Capture
	}
	return rules.Quiet
}

// GivesCheck implements rules.Position: true if making m leaves the
// opponent's king attacked.
func (p *Position) GivesCheck(m rules.Move) bool {
	undo := p.MakeMove(m)
	check := p.InCheck()
	p.UnmakeMove(m, undo)
	return check
}

// IsGameOver implements rules.Position.
func (p *Position) IsGameOver() (rules.GameOverReason, rules.GameResult) {
	if !p.hasLegalMoves() {
		if p.InCheck() {
			if p.sideToMove == rules.White {
				return rules.Checkmate, rules.BlackWins
			}
			return rules.Checkmate, rules.WhiteWins
		}
		return rules.Stalemate, rules.Draw
	}
	if p.halfMoveClock >= 100 {
		return rules.FiftyMoveRule, rules.Draw
	}
	if p.isInsufficientMaterial() {
		return rules.InsufficientMaterial, rules.Draw
	}
	return rules.NotOver, rules.NoResult
}

func (p *Position) hasLegalMoves() bool {
	pseudo := p.generatePseudoLegal()
	pinned := p.computePinned()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if p.isLegalFast(m, pinned) {
			return true
		}
	}
	return false
}

func (p *Position) isInsufficientMaterial() bool {
	if p.pieces[rules.White][rules.Pawn] != 0 || p.pieces[rules.Black][rules.Pawn] != 0 {
		return false
	}
	if p.pieces[rules.White][rules.Rook] != 0 || p.pieces[rules.Black][rules.Rook] != 0 {
		return false
	}
	if p.pieces[rules.White][rules.Queen] != 0 || p.pieces[rules.Black][rules.Queen] != 0 {
		return false
	}
	whiteMinors := p.pieces[rules.White][rules.Knight].PopCount() + p.pieces[rules.White][rules.Bishop].PopCount()
	blackMinors := p.pieces[rules.Black][rules.Knight].PopCount() + p.pieces[rules.Black][rules.Bishop].PopCount()
	return whiteMinors <= 1 && blackMinors <= 1
}

// generatePseudoLegal generates all pseudo-legal moves: legal piece
// movement ignoring whether the side to move's own king ends up
// attacked.
func (p *Position) generatePseudoLegal() *rules.MoveList {
	list := &rules.MoveList{}
	us := p.sideToMove
	them := us.Other()
	own := p.occupied[us]
	enemy := p.occupied[them]

	p.generatePawnMoves(list, us, enemy)

	knights := p.pieces[us][rules.Knight]
	for knights != 0 {
		from := knights.PopLSB()
		addTargets(list, from, KnightAttacks(from)&^own)
	}

	bishops := p.pieces[us][rules.Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		addTargets(list, from, BishopAttacks(from, p.all)&^own)
	}

	rooks := p.pieces[us][rules.Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		addTargets(list, from, RookAttacks(from, p.all)&^own)
	}

	queens := p.pieces[us][rules.Queen]
	for queens != 0 {
		from := queens.PopLSB()
		addTargets(list, from, QueenAttacks(from, p.all)&^own)
	}

	kingSq := p.kingSquare[us]
	addTargets(list, kingSq, KingAttacks(kingSq)&^own)
	p.generateCastling(list, us)

	return list
}

func addTargets(list *rules.MoveList, from rules.Square, targets rules.Bitboard) {
	for targets != 0 {
		to := targets.PopLSB()
		list.Add(rules.NewMove(from, to))
	}
}

func (p *Position) generatePawnMoves(list *rules.MoveList, us rules.Color, enemy rules.Bitboard) {
	pawns := p.pieces[us][rules.Pawn]
	var promoRank rules.Bitboard
	var startRank rules.Bitboard
	if us == rules.White {
		promoRank = rules.Rank8
		startRank = rules.Rank2
	} else {
		promoRank = rules.Rank1
		startRank = rules.Rank7
	}

	for bb := pawns; bb != 0; {
		from := bb.PopLSB()
		fromBB := rules.SquareBB(from)

		var push1, push2 rules.Square
		var push1BB rules.Bitboard
		if us == rules.White {
			push1BB = fromBB.North()
		} else {
			push1BB = fromBB.South()
		}
		if push1BB&p.all == 0 {
			push1 = push1BB.LSB()
			p.addPawnMove(list, from, push1, promoRank)
			if fromBB&startRank != 0 {
				var push2BB rules.Bitboard
				if us == rules.White {
					push2BB = push1BB.North()
				} else {
					push2BB = push1BB.South()
				}
				if push2BB&p.all == 0 {
					push2 = push2BB.LSB()
					list.Add(rules.NewMove(from, push2))
				}
			}
		}

		attacks := PawnAttacks(from, us) & enemy
		for attacks != 0 {
			to := attacks.PopLSB()
			p.addPawnMove(list, from, to, promoRank)
		}

		if p.enPassant != rules.NoSquare {
			if PawnAttacks(from, us)&rules.SquareBB(p.enPassant) != 0 {
				list.Add(rules.NewEnPassant(from, p.enPassant))
			}
		}
	}
}

func (p *Position) addPawnMove(list *rules.MoveList, from, to rules.Square, promoRank rules.Bitboard) {
	if rules.SquareBB(to)&promoRank != 0 {
		list.Add(rules.NewPromotion(from, to, rules.Queen))
		list.Add(rules.NewPromotion(from, to, rules.Rook))
		list.Add(rules.NewPromotion(from, to, rules.Bishop))
		list.Add(rules.NewPromotion(from, to, rules.Knight))
		return
	}
	list.Add(rules.NewMove(from, to))
}

func (p *Position) generateCastling(list *rules.MoveList, us rules.Color) {
	them := us.Other()
	if us == rules.White {
		if p.castling.Can(rules.White, true) &&
			p.all&(rules.SquareBB(rules.F1)|rules.SquareBB(rules.G1)) == 0 &&
			!p.IsSquareAttacked(rules.E1, them) && !p.IsSquareAttacked(rules.F1, them) && !p.IsSquareAttacked(rules.G1, them) {
			list.Add(rules.NewCastling(rules.E1, rules.G1))
		}
		if p.castling.Can(rules.White, false) &&
			p.all&(rules.SquareBB(rules.B1)|rules.SquareBB(rules.C1)|rules.SquareBB(rules.D1)) == 0 &&
			!p.IsSquareAttacked(rules.E1, them) && !p.IsSquareAttacked(rules.D1, them) && !p.IsSquareAttacked(rules.C1, them) {
			list.Add(rules.NewCastling(rules.E1, rules.C1))
		}
		return
	}
	if p.castling.Can(rules.Black, true) &&
		p.all&(rules.SquareBB(rules.F8)|rules.SquareBB(rules.G8)) == 0 &&
		!p.IsSquareAttacked(rules.E8, them) && !p.IsSquareAttacked(rules.F8, them) && !p.IsSquareAttacked(rules.G8, them) {
		list.Add(rules.NewCastling(rules.E8, rules.G8))
	}
	if p.castling.Can(rules.Black, false) &&
		p.all&(rules.SquareBB(rules.B8)|rules.SquareBB(rules.C8)|rules.SquareBB(rules.D8)) == 0 &&
		!p.IsSquareAttacked(rules.E8, them) && !p.IsSquareAttacked(rules.D8, them) && !p.IsSquareAttacked(rules.C8, them) {
		list.Add(rules.NewCastling(rules.E8, rules.C8))
	}
}

// filterLegal keeps only moves from pseudo that leave the mover's own
// king safe, using the same fast-path-plus-pin-check optimization as
// the teacher: most moves by unpinned non-king pieces, when not in
// check, are legal by construction.
func (p *Position) filterLegal(pseudo *rules.MoveList) *rules.MoveList {
	legal := &rules.MoveList{}
	pinned := p.computePinned()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if p.isLegalFast(m, pinned) {
			legal.Add(m)
		}
	}
	return legal
}

func (p *Position) isLegalFast(m rules.Move, pinned rules.Bitboard) bool {
	us := p.sideToMove
	from, to := m.From(), m.To()
	ksq := p.kingSquare[us]

	if m.IsEnPassant() {
		return p.isLegalEnPassant(m)
	}

	if from == ksq {
		them := us.Other()
		if m.IsCastling() {
			return p.checkers == 0
		}
		occWithoutKing := p.all &^ rules.SquareBB(from)
		return p.attackersByColor(to, them, occWithoutKing) == 0
	}

	if p.checkers != 0 {
		if p.checkers.PopCount() > 1 {
			return false
		}
		checker := p.checkers.LSB()
		safe := Between(checker, ksq) | rules.SquareBB(checker)
		if rules.SquareBB(to)&safe == 0 {
			return false
		}
	}

	if rules.SquareBB(from)&pinned != 0 {
		return aligned(from, ksq, to)
	}

	return true
}

func (p *Position) isLegalEnPassant(m rules.Move) bool {
	undo := p.MakeMove(m)
	us := p.sideToMove.Other()
	legal := !p.IsSquareAttacked(p.kingSquare[us], p.sideToMove)
	p.UnmakeMove(m, undo)
	return legal
}

// MakeMove implements rules.Position: applies m and returns an opaque
// UndoToken that restores the prior full state.
func (p *Position) MakeMove(m rules.Move) rules.UndoToken {
	undo := &undoInfo{
		castling:      p.castling,
		enPassant:     p.enPassant,
		halfMoveClock: p.halfMoveClock,
		hash:          p.hash,
		checkers:      p.checkers,
		kingSquare:    p.kingSquare,
		pieces:        p.pieces,
		occupied:      p.occupied,
		all:           p.all,
	}

	us := p.sideToMove
	them := us.Other()
	from, to := m.From(), m.To()

	piece := p.removePiece(from)
	isPawnMove := piece.Kind() == rules.Pawn
	isCapture := false

	if m.IsEnPassant() {
		var capSq rules.Square
		if us == rules.White {
			capSq = rules.NewSquare(to.File(), to.Rank()-1)
		} else {
			capSq = rules.NewSquare(to.File(), to.Rank()+1)
		}
		p.removePiece(capSq)
		isCapture = true
	} else if captured := p.PieceAt(to); captured != rules.NoPiece {
		p.removePiece(to)
		isCapture = true
	}

	if m.IsPromotion() {
		p.setPiece(rules.NewPiece(m.Promotion(), us), to)
	} else {
		p.setPiece(piece, to)
	}

	if m.IsCastling() {
		var rookFrom, rookTo rules.Square
		switch to {
		case rules.G1:
			rookFrom, rookTo = rules.H1, rules.F1
		case rules.C1:
			rookFrom, rookTo = rules.A1, rules.D1
		case rules.G8:
			rookFrom, rookTo = rules.H8, rules.F8
		case rules.C8:
			rookFrom, rookTo = rules.A8, rules.D8
		}
		rook := p.removePiece(rookFrom)
		p.setPiece(rook, rookTo)
	}

	p.enPassant = rules.NoSquare
	if isPawnMove {
		diff := int(to) - int(from)
		if diff == 16 || diff == -16 {
			if us == rules.White {
				p.enPassant = rules.NewSquare(from.File(), from.Rank()+1)
			} else {
				p.enPassant = rules.NewSquare(from.File(), from.Rank()-1)
			}
		}
	}

	p.castling &^= castlingMaskFor(from) | castlingMaskFor(to)

	if isPawnMove || isCapture {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}
	if us == rules.Black {
		p.fullMoveNumber++
	}

	p.sideToMove = them
	p.hash = computeHash(p)
	p.updateCheckers()

	return undo
}

// castlingMaskFor returns the castling rights forfeited when sq is
// touched by a move, either as the origin (king or rook leaving home)
// or the destination (rook captured on its home square).
func castlingMaskFor(sq rules.Square) CastlingRights {
	switch sq {
	case rules.E1:
		return WhiteKingSide | WhiteQueenSide
	case rules.H1:
		return WhiteKingSide
	case rules.A1:
		return WhiteQueenSide
	case rules.E8:
		return BlackKingSide | BlackQueenSide
	case rules.H8:
		return BlackKingSide
	case rules.A8:
		return BlackQueenSide
	}
	return NoCastling
}

// UnmakeMove implements rules.Position.
func (p *Position) UnmakeMove(m rules.Move, token rules.UndoToken) {
	undo := token.(*undoInfo)
	p.castling = undo.castling
	p.enPassant = undo.enPassant
	p.halfMoveClock = undo.halfMoveClock
	p.hash = undo.hash
	p.checkers = undo.checkers
	p.kingSquare = undo.kingSquare
	p.pieces = undo.pieces
	p.occupied = undo.occupied
	p.all = undo.all
	p.sideToMove = p.sideToMove.Other()
	if p.sideToMove == rules.Black {
		p.fullMoveNumber--
	}
}

package boardrules

import (
	"fmt"

	"github.com/guo-vincent/Classical-Chess-Engine/rules"
)

// Position is the concrete rules.Position implementation shipped by
// this repository: a bitboard board representation with magic
// sliding attacks, Zobrist hashing, and make/unmake move application.
type Position struct {
	pieces   [2][6]rules.Bitboard
	occupied [2]rules.Bitboard
	all      rules.Bitboard

	sideToMove     rules.Color
	castling       CastlingRights
	enPassant      rules.Square
	halfMoveClock  int
	fullMoveNumber int

	hash       uint64
	kingSquare [2]rules.Square
	checkers   rules.Bitboard
}

// undoInfo is the UndoToken this package hands back from MakeMove.
type undoInfo struct {
	castling       CastlingRights
	enPassant      rules.Square
	halfMoveClock  int
	hash           uint64
	checkers       rules.Bitboard
	kingSquare     [2]rules.Square
	pieces         [2][6]rules.Bitboard
	occupied       [2]rules.Bitboard
	all            rules.Bitboard
}

// NewStartingPosition returns the standard chess starting position.
func NewStartingPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic("boardrules: starting FEN failed to parse: " + err.Error())
	}
	return pos
}

// Copy returns a deep copy (the struct has no pointer fields, so a
// plain value copy suffices).
func (p *Position) Copy() *Position {
	np := *p
	return &np
}

// PieceAt returns the piece occupying sq, or rules.NoPiece.
func (p *Position) PieceAt(sq rules.Square) rules.Piece {
	bb := rules.SquareBB(sq)
	if p.all&bb == 0 {
		return rules.NoPiece
	}
	c := rules.Black
	if p.occupied[rules.White]&bb != 0 {
		c = rules.White
	}
	for pk := rules.Pawn; pk <= rules.King; pk++ {
		if p.pieces[c][pk]&bb != 0 {
			return rules.NewPiece(pk, c)
		}
	}
	return rules.NoPiece
}

func (p *Position) setPiece(piece rules.Piece, sq rules.Square) {
	if piece == rules.NoPiece {
		return
	}
	c, pk := piece.Color(), piece.Kind()
	bb := rules.SquareBB(sq)
	p.pieces[c][pk] |= bb
	p.occupied[c] |= bb
	p.all |= bb
	if pk == rules.King {
		p.kingSquare[c] = sq
	}
}

func (p *Position) removePiece(sq rules.Square) rules.Piece {
	piece := p.PieceAt(sq)
	if piece == rules.NoPiece {
		return rules.NoPiece
	}
	c, pk := piece.Color(), piece.Kind()
	bb := rules.SquareBB(sq)
	p.pieces[c][pk] &^= bb
	p.occupied[c] &^= bb
	p.all &^= bb
	return piece
}

func (p *Position) movePiece(from, to rules.Square) {
	piece := p.PieceAt(from)
	if piece == rules.NoPiece {
		return
	}
	c, pk := piece.Color(), piece.Kind()
	moveBB := rules.SquareBB(from) | rules.SquareBB(to)
	p.pieces[c][pk] ^= moveBB
	p.occupied[c] ^= moveBB
	p.all ^= moveBB
	if pk == rules.King {
		p.kingSquare[c] = to
	}
}

// SideToMove implements rules.Position.
func (p *Position) SideToMove() rules.Color { return p.sideToMove }

// Pieces implements rules.Position.
func (p *Position) Pieces(kind rules.PieceKind, c rules.Color) rules.Bitboard { return p.pieces[c][kind] }

// Occupied implements rules.Position.
func (p *Position) Occupied(c rules.Color) rules.Bitboard { return p.occupied[c] }

// AllOccupied implements rules.Position.
func (p *Position) AllOccupied() rules.Bitboard { return p.all }

// KingSquare implements rules.Position.
func (p *Position) KingSquare(c rules.Color) rules.Square { return p.kingSquare[c] }

// EnPassantSquare implements rules.Position.
func (p *Position) EnPassantSquare() rules.Square { return p.enPassant }

// Hash implements rules.Position.
func (p *Position) Hash() uint64 { return p.hash }

// InCheck implements rules.Position.
func (p *Position) InCheck() bool { return p.checkers != 0 }

// CastlingRights returns the current castling rights, exposed for
// FEN rendering and tests.
func (p *Position) CastlingRights() CastlingRights { return p.castling }

// HalfMoveClock returns the half-move clock (plies since the last
// pawn move or capture).
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// FullMoveNumber returns the full move counter.
func (p *Position) FullMoveNumber() int { return p.fullMoveNumber }

// String renders an ASCII board and state summary.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sq := rules.NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == rules.NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.sideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.castling)
	return s
}

// updateOccupied recomputes occupancy bitboards from piece bitboards.
func (p *Position) updateOccupied() {
	p.occupied[rules.White] = rules.Empty
	p.occupied[rules.Black] = rules.Empty
	for pk := rules.Pawn; pk <= rules.King; pk++ {
		p.occupied[rules.White] |= p.pieces[rules.White][pk]
		p.occupied[rules.Black] |= p.pieces[rules.Black][pk]
	}
	p.all = p.occupied[rules.White] | p.occupied[rules.Black]
}

func (p *Position) findKings() {
	p.kingSquare[rules.White] = p.pieces[rules.White][rules.King].LSB()
	p.kingSquare[rules.Black] = p.pieces[rules.Black][rules.King].LSB()
}

// AttackersByColor implements rules.Position: the bitboard of pieces
// of color c attacking sq under the current occupancy.
func (p *Position) AttackersByColor(sq rules.Square, c rules.Color) rules.Bitboard {
	return p.attackersByColor(sq, c, p.all)
}

func (p *Position) attackersByColor(sq rules.Square, c rules.Color, occupied rules.Bitboard) rules.Bitboard {
	enemy := c.Other()
	return (PawnAttacks(sq, enemy) & p.pieces[c][rules.Pawn]) |
		(KnightAttacks(sq) & p.pieces[c][rules.Knight]) |
		(KingAttacks(sq) & p.pieces[c][rules.King]) |
		(BishopAttacks(sq, occupied) & (p.pieces[c][rules.Bishop] | p.pieces[c][rules.Queen])) |
		(RookAttacks(sq, occupied) & (p.pieces[c][rules.Rook] | p.pieces[c][rules.Queen]))
}

// IsSquareAttacked reports whether sq is attacked by byColor.
func (p *Position) IsSquareAttacked(sq rules.Square, byColor rules.Color) bool {
	return p.attackersByColor(sq, byColor, p.all) != 0
}

// updateCheckers recomputes the checkers bitboard for the side to move.
func (p *Position) updateCheckers() {
	us := p.sideToMove
	kingBB := p.pieces[us][rules.King]
	if kingBB == 0 {
		p.checkers = 0
		return
	}
	p.checkers = p.attackersByColor(kingBB.LSB(), us.Other(), p.all)
}

// computePinned returns the bitboard of the side-to-move's pieces
// pinned against their own king, via x-ray sliding attacks.
func (p *Position) computePinned() rules.Bitboard {
	us := p.sideToMove
	them := us.Other()
	ksq := p.kingSquare[us]
	var pinned rules.Bitboard

	snipers := RookAttacks(ksq, 0) & (p.pieces[them][rules.Rook] | p.pieces[them][rules.Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & p.all
		if blockers.PopCount() == 1 && blockers&p.occupied[us] != 0 {
			pinned |= blockers
		}
	}

	snipers = BishopAttacks(ksq, 0) & (p.pieces[them][rules.Bishop] | p.pieces[them][rules.Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & p.all
		if blockers.PopCount() == 1 && blockers&p.occupied[us] != 0 {
			pinned |= blockers
		}
	}

	return pinned
}

func aligned(sq1, sq2, sq3 rules.Square) bool {
	return lineTab[sq1][sq2]&rules.SquareBB(sq3) != 0
}

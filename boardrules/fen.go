package boardrules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/guo-vincent/Classical-Chess-Engine/rules"
)

// StartFEN is the FEN for the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceFromFEN = map[byte]rules.Piece{
	'P': rules.WhitePawn, 'N': rules.WhiteKnight, 'B': rules.WhiteBishop,
	'R': rules.WhiteRook, 'Q': rules.WhiteQueen, 'K': rules.WhiteKing,
	'p': rules.BlackPawn, 'n': rules.BlackKnight, 'b': rules.BlackBishop,
	'r': rules.BlackRook, 'q': rules.BlackQueen, 'k': rules.BlackKing,
}

var fenFromPiece = map[rules.Piece]byte{
	rules.WhitePawn: 'P', rules.WhiteKnight: 'N', rules.WhiteBishop: 'B',
	rules.WhiteRook: 'R', rules.WhiteQueen: 'Q', rules.WhiteKing: 'K',
	rules.BlackPawn: 'p', rules.BlackKnight: 'n', rules.BlackBishop: 'b',
	rules.BlackRook: 'r', rules.BlackQueen: 'q', rules.BlackKing: 'k',
}

// ParseFEN builds a Position from Forsyth-Edwards notation.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("boardrules: malformed FEN %q: need at least 4 fields", fen)
	}

	p := &Position{enPassant: rules.NoSquare}

	if err := p.parsePiecePlacement(fields[0]); err != nil {
		return nil, fmt.Errorf("boardrules: parsing FEN %q: %w", fen, err)
	}

	switch fields[1] {
	case "w":
		p.sideToMove = rules.White
	case "b":
		p.sideToMove = rules.Black
	default:
		return nil, fmt.Errorf("boardrules: parsing FEN %q: bad side to move %q", fen, fields[1])
	}

	p.castling = parseCastlingRights(fields[2])

	if fields[3] != "-" {
		sq, err := rules.ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("boardrules: parsing FEN %q: bad en passant square: %w", fen, err)
		}
		p.enPassant = sq
	}

	p.halfMoveClock = 0
	p.fullMoveNumber = 1
	if len(fields) >= 5 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			p.halfMoveClock = n
		}
	}
	if len(fields) >= 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			p.fullMoveNumber = n
		}
	}

	p.updateOccupied()
	p.findKings()
	p.hash = computeHash(p)
	p.updateCheckers()

	return p, nil
}

func (p *Position) parsePiecePlacement(field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range []byte(rankStr) {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, ok := pieceFromFEN[ch]
			if !ok {
				return fmt.Errorf("unrecognized piece character %q", ch)
			}
			if file > 7 {
				return fmt.Errorf("rank %d overflows", rank+1)
			}
			p.setPiece(piece, rules.NewSquare(file, rank))
			file++
		}
	}
	return nil
}

func parseCastlingRights(field string) CastlingRights {
	if field == "-" {
		return NoCastling
	}
	var cr CastlingRights
	for _, ch := range field {
		switch ch {
		case 'K':
			cr |= WhiteKingSide
		case 'Q':
			cr |= WhiteQueenSide
		case 'k':
			cr |= BlackKingSide
		case 'q':
			cr |= BlackQueenSide
		}
	}
	return cr
}

// ToFEN renders the position in Forsyth-Edwards notation.
func (p *Position) ToFEN() string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := rules.NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == rules.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteByte(fenFromPiece[piece])
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}

	b.WriteByte(' ')
	if p.sideToMove == rules.White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}

	b.WriteByte(' ')
	b.WriteString(p.castling.String())

	b.WriteByte(' ')
	if p.enPassant == rules.NoSquare {
		b.WriteByte('-')
	} else {
		b.WriteString(p.enPassant.String())
	}

	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(p.halfMoveClock))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(p.fullMoveNumber))

	return b.String()
}

// computeHash derives the Zobrist hash from scratch; used on FEN
// load and by MakeMove, which recomputes the hash after every move
// rather than updating it incrementally.
func computeHash(p *Position) uint64 {
	var h uint64
	for c := rules.White; c <= rules.Black; c++ {
		for pk := rules.Pawn; pk <= rules.King; pk++ {
			bb := p.pieces[c][pk]
			for bb != 0 {
				sq := bb.PopLSB()
				h ^= zobristPiece[c][pk][sq]
			}
		}
	}
	if p.enPassant != rules.NoSquare {
		h ^= zobristEnPassant[p.enPassant.File()]
	}
	h ^= zobristCastling[p.castling]
	if p.sideToMove == rules.Black {
		h ^= zobristSideToMove
	}
	return h
}

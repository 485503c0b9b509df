package rules

import "fmt"

// MoveKind classifies a Move for the core's quiescence/ordering logic.
type MoveKind uint8

// Move classifications.
const (
	Quiet MoveKind = iota
	Capture
	Promotion
	EnPassant
	Castle
)

// Move encodes a chess move in 16 bits:
// bits 0-5: from square, bits 6-11: to square,
// bits 12-13: promotion piece kind (0=Knight..3=Queen), bits 14-15: flag.
type Move uint16

const (
	flagNormal    uint16 = 0 << 14
	flagPromotion uint16 = 1 << 14
	flagEnPassant uint16 = 2 << 14
	flagCastling  uint16 = 3 << 14
)

// NoMove represents the absence of a move.
const NoMove Move = 0

// NewMove builds a quiet-or-capture move (classification is
// determined by the board state, not the move encoding).
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion builds a promotion move.
func NewPromotion(from, to Square, promo PieceKind) Move {
	promoIdx := promo - Knight
	return Move(from) | Move(to)<<6 | Move(promoIdx)<<12 | Move(flagPromotion)
}

// NewEnPassant builds an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(flagEnPassant)
}

// NewCastling builds a castling move (the king's own movement).
func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(flagCastling)
}

// From returns the origin square.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square((m >> 6) & 0x3F) }

func (m Move) flag() uint16 { return uint16(m) & 0xC000 }

// Promotion returns the promotion piece kind; only meaningful when
// IsPromotion is true.
func (m Move) Promotion() PieceKind { return PieceKind((m>>12)&3) + Knight }

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool { return m.flag() == flagPromotion }

// IsCastling reports whether m is a castling move.
func (m Move) IsCastling() bool { return m.flag() == flagCastling }

// IsEnPassant reports whether m is an en passant capture.
func (m Move) IsEnPassant() bool { return m.flag() == flagEnPassant }

// String renders UCI coordinate notation, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string("nbrq"[m.Promotion()-Knight])
	}
	return s
}

// ParsePromotionChar maps a UCI promotion letter to a PieceKind.
func ParsePromotionChar(c byte) (PieceKind, error) {
	switch c {
	case 'n':
		return Knight, nil
	case 'b':
		return Bishop, nil
	case 'r':
		return Rook, nil
	case 'q':
		return Queen, nil
	default:
		return NoPieceKind, fmt.Errorf("rules: invalid promotion piece %q", c)
	}
}

// MoveList is a fixed-capacity move buffer, avoiding per-node
// allocation in the hot move-generation path.
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends m to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves currently held.
func (ml *MoveList) Len() int { return ml.count }

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Set overwrites the move at index i, used by in-place ordering sorts.
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }

// Swap exchanges the moves at i and j.
func (ml *MoveList) Swap(i, j int) { ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i] }

// Clear empties the list without releasing its backing array.
func (ml *MoveList) Clear() { ml.count = 0 }

// Slice returns the populated portion of the list.
func (ml *MoveList) Slice() []Move { return ml.moves[:ml.count] }

package boardrules

import "github.com/guo-vincent/Classical-Chess-Engine/rules"

// CastlingRights tracks which castling moves remain available.
type CastlingRights uint8

// Bit flags, one per castling right, matching FEN's KQkq order.
const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

// Can reports whether color c may castle on the given side.
func (cr CastlingRights) Can(c rules.Color, kingSide bool) bool {
	if c == rules.White {
		if kingSide {
			return cr&WhiteKingSide != 0
		}
		return cr&WhiteQueenSide != 0
	}
	if kingSide {
		return cr&BlackKingSide != 0
	}
	return cr&BlackQueenSide != 0
}

package engine

import "github.com/guo-vincent/Classical-Chess-Engine/rules"

// shiftUp/shiftDown move a bitboard one rank toward the eighth/first
// rank respectively; shiftLeft/shiftRight move one file toward a/h.
// These wrap rules.Bitboard's directional shifts so evaluation code
// reads in absolute board terms rather than per-color terms.
func shiftUp(bb rules.Bitboard) rules.Bitboard    { return bb.North() }
func shiftDown(bb rules.Bitboard) rules.Bitboard  { return bb.South() }
func shiftLeft(bb rules.Bitboard) rules.Bitboard  { return bb.West() }
func shiftRight(bb rules.Bitboard) rules.Bitboard { return bb.East() }

// forward returns bb shifted one rank in c's direction of advance.
func forward(bb rules.Bitboard, c rules.Color) rules.Bitboard {
	if c == rules.White {
		return bb.North()
	}
	return bb.South()
}

// backward returns bb shifted one rank away from c's direction of advance.
func backward(bb rules.Bitboard, c rules.Color) rules.Bitboard {
	if c == rules.White {
		return bb.South()
	}
	return bb.North()
}

// expand grows bb by one square in all eight directions; ring builds
// the king-safety zone from it.
func expand(bb rules.Bitboard) rules.Bitboard {
	return bb | bb.North() | bb.South() | bb.East() | bb.West() |
		bb.NorthEast() | bb.NorthWest() | bb.SouthEast() | bb.SouthWest()
}

// ring returns the squares adjacent to sq (the king's one-square
// safety ring).
func ring(sq rules.Square) rules.Bitboard {
	bb := rules.SquareBB(sq)
	return expand(bb) &^ bb
}

// fileOf and rankOf are thin square decomposition helpers, kept
// alongside the bit shifts so evaluation code doesn't reach into
// rules for single-square arithmetic.
func fileOf(sq rules.Square) int { return sq.File() }
func rankOf(sq rules.Square) int { return sq.Rank() }

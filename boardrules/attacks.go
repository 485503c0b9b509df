package boardrules

import "github.com/guo-vincent/Classical-Chess-Engine/rules"

// Precomputed attack tables for non-sliding pieces, and the
// between/line lookups used for pin and check-blocking detection.
var (
	knightAttacksTab [64]rules.Bitboard
	kingAttacksTab   [64]rules.Bitboard
	pawnAttacksTab   [2][64]rules.Bitboard
	pawnPushesTab    [2][64]rules.Bitboard

	betweenTab [64][64]rules.Bitboard
	lineTab    [64][64]rules.Bitboard
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
	initBetween()
	initMagics()
	initZobrist()
}

func initKnightAttacks() {
	for sq := rules.A1; sq <= rules.H8; sq++ {
		bb := rules.SquareBB(sq)
		var att rules.Bitboard
		att |= (bb << 17) & rules.NotFileA
		att |= (bb << 15) & rules.NotFileH
		att |= (bb >> 17) & rules.NotFileH
		att |= (bb >> 15) & rules.NotFileA
		att |= (bb << 10) & ^(rules.FileA | rules.FileB)
		att |= (bb << 6) & ^(rules.FileG | rules.FileH)
		att |= (bb >> 10) & ^(rules.FileG | rules.FileH)
		att |= (bb >> 6) & ^(rules.FileA | rules.FileB)
		knightAttacksTab[sq] = att
	}
}

func initKingAttacks() {
	for sq := rules.A1; sq <= rules.H8; sq++ {
		bb := rules.SquareBB(sq)
		att := bb.North() | bb.South() | bb.East() | bb.West()
		att |= bb.NorthEast() | bb.NorthWest() | bb.SouthEast() | bb.SouthWest()
		kingAttacksTab[sq] = att
	}
}

func initPawnAttacks() {
	for sq := rules.A1; sq <= rules.H8; sq++ {
		bb := rules.SquareBB(sq)
		pawnAttacksTab[rules.White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacksTab[rules.Black][sq] = bb.SouthEast() | bb.SouthWest()
		pawnPushesTab[rules.White][sq] = bb.North()
		pawnPushesTab[rules.Black][sq] = bb.South()
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func initBetween() {
	for sq1 := rules.A1; sq1 <= rules.H8; sq1++ {
		for sq2 := rules.A1; sq2 <= rules.H8; sq2++ {
			if sq1 == sq2 {
				continue
			}
			f1, r1 := sq1.File(), sq1.Rank()
			f2, r2 := sq2.File(), sq2.Rank()
			df, dr := sign(f2-f1), sign(r2-r1)
			if df != 0 && dr != 0 && absInt(f2-f1) != absInt(r2-r1) {
				continue
			}
			if df == 0 && dr == 0 {
				continue
			}

			var between rules.Bitboard
			f, r := f1+df, r1+dr
			for f != f2 || r != r2 {
				if f < 0 || f > 7 || r < 0 || r > 7 {
					break
				}
				between |= rules.SquareBB(rules.NewSquare(f, r))
				f += df
				r += dr
			}
			betweenTab[sq1][sq2] = between

			var line rules.Bitboard
			f, r = f1, r1
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				line |= rules.SquareBB(rules.NewSquare(f, r))
				f -= df
				r -= dr
			}
			f, r = f1+df, r1+dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				line |= rules.SquareBB(rules.NewSquare(f, r))
				f += df
				r += dr
			}
			lineTab[sq1][sq2] = line
		}
	}
}

// Between returns the squares strictly between sq1 and sq2, or
// Empty if they are not aligned on a rank, file, or diagonal.
func Between(sq1, sq2 rules.Square) rules.Bitboard { return betweenTab[sq1][sq2] }

// PawnAttacks returns the diagonal-capture bitboard for a pawn of
// color c on sq.
func PawnAttacks(sq rules.Square, c rules.Color) rules.Bitboard { return pawnAttacksTab[c][sq] }

// KnightAttacks returns the knight attack bitboard for sq.
func KnightAttacks(sq rules.Square) rules.Bitboard { return knightAttacksTab[sq] }

// KingAttacks returns the king attack bitboard for sq.
func KingAttacks(sq rules.Square) rules.Bitboard { return kingAttacksTab[sq] }

// BishopAttacks returns bishop attacks from sq given occupied.
func BishopAttacks(sq rules.Square, occupied rules.Bitboard) rules.Bitboard {
	return getBishopAttacks(sq, occupied)
}

// RookAttacks returns rook attacks from sq given occupied.
func RookAttacks(sq rules.Square, occupied rules.Bitboard) rules.Bitboard {
	return getRookAttacks(sq, occupied)
}

// QueenAttacks returns queen attacks from sq given occupied.
func QueenAttacks(sq rules.Square, occupied rules.Bitboard) rules.Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// attackTable implements rules.AttackTable by delegating to the
// package-level lookup functions above.
type attackTable struct{}

func (attackTable) PawnAttacks(sq rules.Square, c rules.Color) rules.Bitboard { return PawnAttacks(sq, c) }
func (attackTable) KnightAttacks(sq rules.Square) rules.Bitboard              { return KnightAttacks(sq) }
func (attackTable) KingAttacks(sq rules.Square) rules.Bitboard                { return KingAttacks(sq) }
func (attackTable) BishopAttacks(sq rules.Square, occ rules.Bitboard) rules.Bitboard {
	return BishopAttacks(sq, occ)
}
func (attackTable) RookAttacks(sq rules.Square, occ rules.Bitboard) rules.Bitboard {
	return RookAttacks(sq, occ)
}
func (attackTable) QueenAttacks(sq rules.Square, occ rules.Bitboard) rules.Bitboard {
	return QueenAttacks(sq, occ)
}

// AttackTable is the package's single rules.AttackTable instance.
var AttackTable rules.AttackTable = attackTable{}

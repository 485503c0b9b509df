package engine

import "github.com/guo-vincent/Classical-Chess-Engine/rules"

// SearchResult summarizes the outcome of a depth-bounded search.
type SearchResult struct {
	BestMove rules.Move
	Score    int
	Depth    int
}

// iterativeDeepen runs negamax at increasing depths from 1 up to
// maxDepth, re-using the transposition cache between iterations so
// each shallower pass seeds move ordering for the next.
func (e *Engine) iterativeDeepen(pos rules.Position, maxDepth int) SearchResult {
	var result SearchResult

	for depth := 1; depth <= maxDepth; depth++ {
		moves := pos.LegalMoves()
		if moves.Len() == 0 {
			return result
		}

		hash := pos.Hash()
		ttBestRaw, hasBest := e.tt.BestMove(hash)
		var ttBest rules.Move
		if hasBest {
			ttBest = rules.Move(ttBestRaw)
		}
		e.orderMovesByStaticEval(pos, moves, ttBest)

		alpha, beta := negInf, posInf
		best := negInf
		var bestMove rules.Move

		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			undo := pos.MakeMove(m)
			score := -e.negamax(pos, depth-1, -beta, -alpha, 1)
			pos.UnmakeMove(m, undo)

			if score > best {
				best = score
				bestMove = m
			}
			if best > alpha {
				alpha = best
			}
		}

		e.tt.Store(hash, depth, best, boundExact, uint16(bestMove))
		result = SearchResult{BestMove: bestMove, Score: best, Depth: depth}
	}

	return result
}

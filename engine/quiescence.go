package engine

import "github.com/guo-vincent/Classical-Chess-Engine/rules"

// quiescenceDepthCap bounds quiescence recursion so that zugzwang-free
// positions with long forced capture sequences cannot blow the stack.
const quiescenceDepthCap = 32

// quiescence extends the search along noisy lines (captures,
// promotions, and checks) past the nominal search horizon so the
// static evaluator is never asked to judge a position in the middle
// of a capture sequence.
func (e *Engine) quiescence(pos rules.Position, alpha, beta, qdepth int) int {
	if reason, _ := pos.IsGameOver(); reason != rules.NotOver {
		if reason == rules.Checkmate {
			return -terminalScore
		}
		return 0
	}

	standPat := e.eval.Evaluate(pos)
	if pos.SideToMove() == rules.Black {
		standPat = -standPat
	}

	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qdepth >= quiescenceDepthCap {
		return alpha
	}

	moves := noisyMoves(pos)
	e.orderMovesByStaticEval(pos, moves, 0)

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		score := -e.quiescence(pos, -beta, -alpha, qdepth+1)
		pos.UnmakeMove(m, undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// noisyMoves extracts captures, promotions, en passant, and
// check-giving moves from the full legal move list. The Position
// capability offers only LegalMoves, so quiescence filters rather
// than asking for a dedicated capture generator.
func noisyMoves(pos rules.Position) *rules.MoveList {
	all := pos.LegalMoves()
	noisy := &rules.MoveList{}
	for i := 0; i < all.Len(); i++ {
		m := all.Get(i)
		switch pos.MoveKind(m) {
		case rules.Capture, rules.Promotion, rules.EnPassant:
			noisy.Add(m)
			continue
		}
		if pos.GivesCheck(m) {
			noisy.Add(m)
		}
	}
	return noisy
}

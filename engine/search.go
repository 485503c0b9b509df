package engine

import "github.com/guo-vincent/Classical-Chess-Engine/rules"

const (
	negInf = -1 << 30
	posInf = 1 << 30
	mateScore = 1 << 20
)

// orderMovesByStaticEval sorts moves in place by applying each one,
// taking the static evaluation of the resulting position, and undoing
// it — the mover's own score, descending, exactly as a one-ply lookahead
// ordering pass. ttBest, when present, is pinned to the front ahead of
// every evaluated score.
func (e *Engine) orderMovesByStaticEval(pos rules.Position, moves *rules.MoveList, ttBest rules.Move) {
	mover := pos.SideToMove()
	n := moves.Len()
	scores := make([]int, n)
	for i := 0; i < n; i++ {
		m := moves.Get(i)
		if m == ttBest {
			scores[i] = 1 << 29
			continue
		}
		undo := pos.MakeMove(m)
		score := e.eval.Evaluate(pos)
		if mover == rules.Black {
			score = -score
		}
		pos.UnmakeMove(m, undo)
		scores[i] = score
	}
	for i := 1; i < n; i++ {
		for j := i; j > 0 && scores[j] > scores[j-1]; j-- {
			scores[j], scores[j-1] = scores[j-1], scores[j]
			moves.Swap(j, j-1)
		}
	}
}

// negamax performs alpha-beta search to depth plies, always returning
// the score from the perspective of the side to move in pos. Equal
// treatment of both colors as "the maximizer" is what negamax buys:
// there is no separate minimizing branch to keep in sync, which is
// where the move-ordering comparator used to diverge by side.
func (e *Engine) negamax(pos rules.Position, depth, alpha, beta int, ply int) int {
	origAlpha, origBeta := alpha, beta
	hash := pos.Hash()

	if depth > 0 {
		if score, ok := e.tt.Probe(hash, depth, alpha, beta); ok {
			return score
		}
	}

	reason, _ := pos.IsGameOver()
	if reason == rules.Checkmate {
		return -mateScore + ply
	}
	if reason != rules.NotOver {
		return 0
	}

	if depth <= 0 {
		return e.quiescence(pos, alpha, beta, 0)
	}

	moves := pos.LegalMoves()
	ttBestRaw, hasBest := e.tt.BestMove(hash)
	var ttBest rules.Move
	if hasBest {
		ttBest = rules.Move(ttBestRaw)
	}
	e.orderMovesByStaticEval(pos, moves, ttBest)

	best := negInf
	var bestMove rules.Move
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		score := -e.negamax(pos, depth-1, -beta, -alpha, ply+1)
		pos.UnmakeMove(m, undo)

		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}

	bound := boundExact
	if best <= origAlpha {
		bound = boundUpper
	} else if best >= origBeta {
		bound = boundLower
	}
	e.tt.Store(hash, depth, best, bound, uint16(bestMove))

	return best
}

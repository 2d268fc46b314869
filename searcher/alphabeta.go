package searcher

import (
	"context"
	"time"

	"gambit/game"
)

// AlphaBeta is minimax with an [alpha, beta] window threaded through the
// descent: once a sibling proves a subtree cannot improve the score already
// guaranteed higher up, the rest of that subtree is skipped. The reported
// score always equals minimax's for the same position and depth; the chosen
// move may differ only between equal-scoring moves. Captures and checks are
// tried first to raise the cutoff rate.
type AlphaBeta struct{}

func NewAlphaBeta() *AlphaBeta { return &AlphaBeta{} }

func (*AlphaBeta) Name() string { return "alphabeta" }

func (*AlphaBeta) MaxDepth() int { return maxPrunedDepth }

func (s *AlphaBeta) Search(ctx context.Context, pos game.Position, depth int, evaluate game.Evaluate) (SearchResult, error) {
	start := time.Now()
	if err := validateDepth(s, depth); err != nil {
		return SearchResult{}, err
	}

	r := newRun(ctx, pos, evaluate)
	if depth == 0 {
		return SearchResult{Score: r.leafScore(0), Elapsed: time.Since(start)}, nil
	}

	moves := orderMoves(pos.LegalMoves())
	if len(moves) == 0 {
		return SearchResult{}, ErrNoLegalMove
	}

	maximizing := pos.SideToMove() == game.White
	var bestMove game.Move
	bestScore := -infinity
	if !maximizing {
		bestScore = infinity
	}
	alpha, beta := -infinity, infinity
	for _, mv := range moves {
		score, err := r.descend(mv, func() (int, error) {
			return r.alphabeta(depth-1, 1, alpha, beta)
		})
		if err != nil {
			return SearchResult{}, err
		}
		if r.stopped {
			// A stopped subtree reports a truncated score: keep it only as a
			// fallback when no move has finished, never over a completed one.
			if bestMove == nil {
				bestScore, bestMove = score, mv
			}
			break
		}
		if maximizing {
			if score > bestScore {
				bestScore, bestMove = score, mv
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score < bestScore {
				bestScore, bestMove = score, mv
			}
			if score < beta {
				beta = score
			}
		}
	}

	return SearchResult{
		Move:    bestMove,
		Score:   bestScore,
		Nodes:   r.nodes,
		Elapsed: time.Since(start),
	}, nil
}

func (r *run) alphabeta(depth, ply, alpha, beta int) (int, error) {
	r.countNode()
	if r.stopped || depth == 0 || r.terminal() {
		return r.leafScore(ply), nil
	}

	moves := orderMoves(r.pos.LegalMoves())
	if len(moves) == 0 {
		return r.leafScore(ply), nil
	}

	if r.pos.SideToMove() == game.White {
		best := -infinity
		for _, mv := range moves {
			score, err := r.descend(mv, func() (int, error) {
				return r.alphabeta(depth-1, ply+1, alpha, beta)
			})
			if err != nil {
				return 0, err
			}
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
			if alpha >= beta {
				break // beta cutoff: the minimizer above has a better option
			}
			if r.stopped {
				break
			}
		}
		return best, nil
	}

	best := infinity
	for _, mv := range moves {
		score, err := r.descend(mv, func() (int, error) {
			return r.alphabeta(depth-1, ply+1, alpha, beta)
		})
		if err != nil {
			return 0, err
		}
		if score < best {
			best = score
		}
		if score < beta {
			beta = score
		}
		if alpha >= beta {
			break // alpha cutoff
		}
		if r.stopped {
			break
		}
	}
	return best, nil
}

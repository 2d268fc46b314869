package searcher

import (
	"context"
	"time"

	"gambit/game"
)

// Minimax is the full-width reference strategy: every branch explored to the
// depth budget, no pruning. Mostly useful as the correctness baseline the
// pruned variant is checked against.
type Minimax struct{}

func NewMinimax() *Minimax { return &Minimax{} }

func (*Minimax) Name() string { return "minimax" }

func (*Minimax) MaxDepth() int { return maxUnprunedDepth }

func (s *Minimax) Search(ctx context.Context, pos game.Position, depth int, evaluate game.Evaluate) (SearchResult, error) {
	start := time.Now()
	if err := validateDepth(s, depth); err != nil {
		return SearchResult{}, err
	}

	r := newRun(ctx, pos, evaluate)
	if depth == 0 {
		return SearchResult{Score: r.leafScore(0), Elapsed: time.Since(start)}, nil
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return SearchResult{}, ErrNoLegalMove
	}

	maximizing := pos.SideToMove() == game.White
	var bestMove game.Move
	bestScore := -infinity
	if !maximizing {
		bestScore = infinity
	}
	for _, mv := range moves {
		score, err := r.descend(mv, func() (int, error) {
			return r.minimax(depth-1, 1)
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
		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestScore, bestMove = score, mv
		}
	}

	return SearchResult{
		Move:    bestMove,
		Score:   bestScore,
		Nodes:   r.nodes,
		Elapsed: time.Since(start),
	}, nil
}

func (r *run) minimax(depth, ply int) (int, error) {
	r.countNode()
	if r.stopped || depth == 0 || r.terminal() {
		return r.leafScore(ply), nil
	}

	moves := r.pos.LegalMoves()
	if len(moves) == 0 {
		return r.leafScore(ply), nil
	}

	maximizing := r.pos.SideToMove() == game.White
	best := -infinity
	if !maximizing {
		best = infinity
	}
	for _, mv := range moves {
		score, err := r.descend(mv, func() (int, error) {
			return r.minimax(depth-1, ply+1)
		})
		if err != nil {
			return 0, err
		}
		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
		if r.stopped {
			break
		}
	}
	return best, nil
}

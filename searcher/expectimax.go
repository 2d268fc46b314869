package searcher

import (
	"context"
	"math"
	"time"

	"gambit/game"
)

// Expectimax models the opponent as a stochastic process instead of an
// adversary: the searching side's plies maximize (or minimize, for Black) as
// in minimax, while opponent plies are chance nodes scoring the
// probability-weighted average of their children. Averaging needs every
// branch, so no pruning is applied anywhere.
type Expectimax struct {
	probabilities map[string]float64
}

// ExpectimaxOption configures an Expectimax strategy.
type ExpectimaxOption func(*Expectimax)

// WithMoveProbabilities sets the chance-node move distribution, keyed by UCI
// notation. Weights are normalized over the legal moves present in the map;
// chance nodes where no legal move is listed fall back to a uniform
// distribution.
func WithMoveProbabilities(probabilities map[string]float64) ExpectimaxOption {
	return func(e *Expectimax) {
		if len(probabilities) > 0 {
			e.probabilities = probabilities
		}
	}
}

func NewExpectimax(options ...ExpectimaxOption) *Expectimax {
	e := &Expectimax{}
	for _, option := range options {
		option(e)
	}
	return e
}

func (*Expectimax) Name() string { return "expectimax" }

func (*Expectimax) MaxDepth() int { return maxUnprunedDepth }

func (s *Expectimax) Search(ctx context.Context, pos game.Position, depth int, evaluate game.Evaluate) (SearchResult, error) {
	start := time.Now()
	if err := validateDepth(s, depth); err != nil {
		return SearchResult{}, err
	}

	r := &expectimaxRun{
		run:           newRun(ctx, pos, evaluate),
		rootSide:      pos.SideToMove(),
		probabilities: s.probabilities,
	}
	if depth == 0 {
		return SearchResult{Score: r.leafScore(0), Elapsed: time.Since(start)}, nil
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return SearchResult{}, ErrNoLegalMove
	}

	maximizing := r.rootSide == game.White
	var bestMove game.Move
	bestScore := math.Inf(-1)
	if !maximizing {
		bestScore = math.Inf(1)
	}
	for _, mv := range moves {
		score, err := r.descendValue(mv, depth-1, 1, true)
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
		Score:   int(math.Round(bestScore)),
		Nodes:   r.nodes,
		Elapsed: time.Since(start),
	}, nil
}

// expectimaxRun keeps chance-node arithmetic in float64 so uniform averages
// are exact before the single rounding at the root.
type expectimaxRun struct {
	*run
	rootSide      game.Color
	probabilities map[string]float64
}

func (r *expectimaxRun) descendValue(mv game.Move, depth, ply int, chance bool) (float64, error) {
	if err := r.pos.Apply(mv); err != nil {
		return 0, err
	}
	score, searchErr := r.expectimax(depth, ply, chance)
	if err := r.pos.Undo(); err != nil {
		return 0, err
	}
	return score, searchErr
}

func (r *expectimaxRun) expectimax(depth, ply int, chance bool) (float64, error) {
	r.countNode()
	if r.stopped || depth == 0 || r.terminal() {
		return float64(r.leafScore(ply)), nil
	}

	moves := r.pos.LegalMoves()
	if len(moves) == 0 {
		return float64(r.leafScore(ply)), nil
	}

	if chance {
		weights := r.weights(moves)
		expected := 0.0
		for i, mv := range moves {
			score, err := r.descendValue(mv, depth-1, ply+1, false)
			if err != nil {
				return 0, err
			}
			expected += weights[i] * score
			if r.stopped {
				break
			}
		}
		return expected, nil
	}

	maximizing := r.rootSide == game.White
	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}
	for _, mv := range moves {
		score, err := r.descendValue(mv, depth-1, ply+1, true)
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

// weights returns the normalized probability of each legal move. The default
// chance model is uniform; a configured distribution applies whenever it
// covers at least one of the legal moves.
func (r *expectimaxRun) weights(moves []game.Move) []float64 {
	weights := make([]float64, len(moves))
	total := 0.0
	if r.probabilities != nil {
		for i, mv := range moves {
			weights[i] = r.probabilities[mv.String()]
			total += weights[i]
		}
	}
	if total <= 0 {
		uniform := 1.0 / float64(len(moves))
		for i := range weights {
			weights[i] = uniform
		}
		return weights
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

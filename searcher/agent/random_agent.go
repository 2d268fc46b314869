package agent

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"

	"gambit/game"
	"gambit/searcher"
)

// RandomAgent plays a uniformly random legal move. It is the baseline
// opponent for experiments and the move model expectimax assumes.
type RandomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent seeded for reproducible games.
func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (*RandomAgent) Name() string { return "random" }

func (a *RandomAgent) ChooseMove(_ context.Context, pos game.Position) (searcher.SearchResult, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return searcher.SearchResult{}, fmt.Errorf("agent random: %w", searcher.ErrNoLegalMove)
	}
	return searcher.SearchResult{Move: moves[a.rng.Intn(len(moves))], Nodes: 1}, nil
}

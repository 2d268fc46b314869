package puzzle

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"gambit/experiments/metrics"
	"gambit/searcher"
	"gambit/searcher/agent"
)

// Harness scores agents against a puzzle set: a puzzle counts as solved when
// the agent's move matches the first move of the solution line.
type Harness struct {
	agents []agent.Agent
}

func NewHarness(agents ...agent.Agent) *Harness {
	return &Harness{agents: agents}
}

// Run attempts every puzzle with every agent. Puzzles without a solution
// line are skipped.
func (h *Harness) Run(ctx context.Context, puzzles []Puzzle) ([]metrics.PuzzleRecord, error) {
	var records []metrics.PuzzleRecord
	for _, p := range puzzles {
		expected := p.FirstSolutionMove()
		if expected == "" {
			log.Warn().Str("puzzle", p.ID).Msg("skipping puzzle without solution line")
			continue
		}
		for _, a := range h.agents {
			record, err := h.attempt(ctx, a, p, expected)
			if err != nil {
				return records, err
			}
			records = append(records, record)
		}
	}
	return records, nil
}

// Solved tallies how many of records are solved.
func Solved(records []metrics.PuzzleRecord) int {
	solved := 0
	for _, record := range records {
		if record.Solved {
			solved++
		}
	}
	return solved
}

func (h *Harness) attempt(ctx context.Context, a agent.Agent, p Puzzle, expected string) (metrics.PuzzleRecord, error) {
	board, err := p.Board()
	if err != nil {
		return metrics.PuzzleRecord{}, err
	}

	result, err := a.ChooseMove(ctx, board)
	if err != nil {
		return metrics.PuzzleRecord{}, fmt.Errorf("puzzle %s agent %s: %w", p.ID, a.Name(), err)
	}

	got := result.Move.String()
	solved := got == expected
	log.Info().
		Str("puzzle", p.ID).
		Int("rating", p.Rating).
		Str("agent", a.Name()).
		Str("expected", expected).
		Str("got", got).
		Bool("solved", solved).
		Msg("puzzle attempted")

	return metrics.PuzzleRecord{
		PuzzleID:     p.ID,
		Rating:       p.Rating,
		Agent:        a.Name(),
		Expected:     expected,
		Got:          got,
		Solved:       solved,
		SearchMetric: searchMetric(a, result),
	}, nil
}

func searchMetric(a agent.Agent, result searcher.SearchResult) metrics.SearchMetric {
	type metricer interface {
		Metric(searcher.SearchResult) metrics.SearchMetric
	}
	if m, ok := a.(metricer); ok {
		return m.Metric(result)
	}
	return metrics.SearchMetric{
		Strategy: a.Name(),
		Score:    result.Score,
		Nodes:    result.Nodes,
		Duration: result.Elapsed,
	}
}

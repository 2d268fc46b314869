package agent

import (
	"context"
	"fmt"
	"time"

	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
)

const defaultDepth = 3

// Option configures a SearchAgent.
type Option func(*SearchAgent)

// WithDepth sets the search depth in plies. Validation happens per call, so
// an out-of-range depth surfaces as searcher.ErrInvalidDepth from ChooseMove
// before any search work is done.
func WithDepth(depth int) Option {
	return func(a *SearchAgent) {
		a.depth = depth
	}
}

// WithEvaluator replaces the default position evaluator.
func WithEvaluator(evaluate game.Evaluate) Option {
	return func(a *SearchAgent) {
		if evaluate != nil {
			a.evaluate = evaluate
		}
	}
}

func WithName(name string) Option {
	return func(a *SearchAgent) {
		if name != "" {
			a.name = name
		}
	}
}

// WithTimeout bounds each ChooseMove call. On expiry the agent returns the
// best move found so far rather than failing.
func WithTimeout(timeout time.Duration) Option {
	return func(a *SearchAgent) {
		if timeout > 0 {
			a.timeout = timeout
		}
	}
}

// WithCollector records a SearchMetric per ChooseMove call.
func WithCollector(collector metrics.Collector) Option {
	return func(a *SearchAgent) {
		if collector != nil {
			a.collector = collector
		}
	}
}

// SearchAgent drives a search strategy with a fixed depth and evaluator.
type SearchAgent struct {
	strategy  searcher.Strategy
	depth     int
	evaluate  game.Evaluate
	name      string
	timeout   time.Duration
	collector metrics.Collector
}

func NewSearchAgent(strategy searcher.Strategy, options ...Option) *SearchAgent {
	a := &SearchAgent{
		strategy:  strategy,
		depth:     defaultDepth,
		evaluate:  game.EvaluatePosition,
		collector: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(a)
	}
	if a.name == "" {
		a.name = fmt.Sprintf("%s-d%d", strategy.Name(), a.depth)
	}
	return a
}

func (a *SearchAgent) Name() string { return a.name }

func (a *SearchAgent) ChooseMove(ctx context.Context, pos game.Position) (searcher.SearchResult, error) {
	if a.depth < 1 || a.depth > a.strategy.MaxDepth() {
		return searcher.SearchResult{}, fmt.Errorf("agent %s depth %d: %w", a.name, a.depth, searcher.ErrInvalidDepth)
	}
	if len(pos.LegalMoves()) == 0 {
		return searcher.SearchResult{}, fmt.Errorf("agent %s: %w", a.name, searcher.ErrNoLegalMove)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	a.collector.Start(a.strategy.Name(), a.depth)
	result, err := a.strategy.Search(ctx, pos, a.depth, a.evaluate)
	if err != nil {
		return searcher.SearchResult{}, fmt.Errorf("agent %s: %w", a.name, err)
	}
	a.collector.AddNodes(result.Nodes)
	a.collector.Complete(result.Score)
	return result, nil
}

// Metric builds the MoveMetric for a result this agent produced.
func (a *SearchAgent) Metric(result searcher.SearchResult) metrics.SearchMetric {
	return metrics.SearchMetric{
		Strategy: a.strategy.Name(),
		Depth:    a.depth,
		Score:    result.Score,
		Nodes:    result.Nodes,
		Duration: result.Elapsed,
	}
}

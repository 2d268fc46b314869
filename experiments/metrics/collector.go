package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one top-level search call.
type SearchMetric struct {
	Strategy string
	Depth    int
	Score    int
	Nodes    uint64
	Duration time.Duration
}

// MoveMetric is a SearchMetric in the context of a game.
type MoveMetric struct {
	Step   int
	Player string
	Move   string
	SearchMetric
}

// GameMetric summarizes one finished game.
type GameMetric struct {
	White      string
	Black      string
	Outcome    string
	StartTime  time.Time
	Duration   time.Duration
	TotalMoves int
}

// PuzzleRecord is one agent's attempt at one puzzle.
type PuzzleRecord struct {
	PuzzleID string
	Rating   int
	Agent    string
	Expected string
	Got      string
	Solved   bool
	SearchMetric
}

// Collector gathers instrumentation for a single search call. The node
// counter is atomic so parallel searches may share one collector.
type Collector interface {
	Start(strategy string, depth int)
	AddNodes(n uint64)
	Complete(score int) SearchMetric
}

type collector struct {
	strategy  string
	depth     int
	startTime time.Time
	nodes     atomic.Uint64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(strategy string, depth int) {
	c.strategy = strategy
	c.depth = depth
	c.startTime = time.Now()
	c.nodes.Store(0)
}

func (c *collector) AddNodes(n uint64) {
	c.nodes.Add(n)
}

func (c *collector) Complete(score int) SearchMetric {
	return SearchMetric{
		Strategy: c.strategy,
		Depth:    c.depth,
		Score:    score,
		Nodes:    c.nodes.Load(),
		Duration: time.Since(c.startTime),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a collector that records nothing, for callers
// that do not care about instrumentation.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (*dummyCollector) Start(strategy string, depth int) {}
func (*dummyCollector) AddNodes(n uint64)                {}
func (*dummyCollector) Complete(score int) SearchMetric  { return SearchMetric{} }

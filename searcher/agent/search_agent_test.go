package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
)

// fakeCollector records the collector calls ChooseMove makes.
type fakeCollector struct {
	started  bool
	strategy string
	depth    int
	nodes    uint64
	score    int
	done     bool
}

func (c *fakeCollector) Start(strategy string, depth int) {
	c.started = true
	c.strategy = strategy
	c.depth = depth
}

func (c *fakeCollector) AddNodes(n uint64) { c.nodes += n }

func (c *fakeCollector) Complete(score int) metrics.SearchMetric {
	c.score = score
	c.done = true
	return metrics.SearchMetric{Strategy: c.strategy, Depth: c.depth, Score: score, Nodes: c.nodes}
}

func TestSearchAgentChoosesMove(t *testing.T) {
	a := NewSearchAgent(searcher.NewAlphaBeta(), WithDepth(2))
	board := game.NewBoard()

	result, err := a.ChooseMove(context.Background(), board)
	require.NoError(t, err)
	require.NotNil(t, result.Move)
	require.Positive(t, result.Nodes)
	require.Equal(t, "alphabeta-d2", a.Name())
}

func TestSearchAgentFindsMateInOne(t *testing.T) {
	board, err := game.NewBoardFromFEN("6k1/8/6K1/8/8/8/8/R7 w - - 0 1")
	require.NoError(t, err)
	a := NewSearchAgent(searcher.NewAlphaBeta(), WithDepth(2))

	result, err := a.ChooseMove(context.Background(), board)
	require.NoError(t, err)
	require.Equal(t, "a1a8", result.Move.String())
}

func TestSearchAgentRejectsBadDepth(t *testing.T) {
	board := game.NewBoard()

	for _, depth := range []int{0, -1, searcher.NewMinimax().MaxDepth() + 1} {
		a := NewSearchAgent(searcher.NewMinimax(), WithDepth(depth))
		_, err := a.ChooseMove(context.Background(), board)
		require.ErrorIsf(t, err, searcher.ErrInvalidDepth, "depth %d", depth)
	}
}

func TestSearchAgentNoLegalMove(t *testing.T) {
	board, err := game.NewBoardFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	a := NewSearchAgent(searcher.NewMinimax())

	_, err = a.ChooseMove(context.Background(), board)
	require.ErrorIs(t, err, searcher.ErrNoLegalMove)
}

func TestSearchAgentReportsToCollector(t *testing.T) {
	c := &fakeCollector{}
	a := NewSearchAgent(searcher.NewAlphaBeta(), WithDepth(2), WithCollector(c))

	result, err := a.ChooseMove(context.Background(), game.NewBoard())
	require.NoError(t, err)

	require.True(t, c.started)
	require.Equal(t, "alphabeta", c.strategy)
	require.Equal(t, 2, c.depth)
	require.Equal(t, result.Nodes, c.nodes)
	require.Equal(t, result.Score, c.score)
	require.True(t, c.done)
}

func TestSearchAgentOptions(t *testing.T) {
	a := NewSearchAgent(searcher.NewMinimax(), WithDepth(1), WithName("shallow"),
		WithEvaluator(game.EvaluateMaterial), WithTimeout(time.Second))

	require.Equal(t, "shallow", a.Name())

	result, err := a.ChooseMove(context.Background(), game.NewBoard())
	require.NoError(t, err)
	require.Equal(t, 0, result.Score, "depth 1 from the start is materially level under the material evaluator")
}

func TestSearchAgentTimeoutStillReturnsMove(t *testing.T) {
	// The timeout is far too small for a depth-4 search; the agent must still
	// hand back its best-so-far move instead of an error.
	a := NewSearchAgent(searcher.NewAlphaBeta(), WithDepth(4), WithTimeout(time.Millisecond))

	result, err := a.ChooseMove(context.Background(), game.NewBoard())
	require.NoError(t, err)
	require.NotNil(t, result.Move)
}

func TestSearchAgentMetric(t *testing.T) {
	a := NewSearchAgent(searcher.NewMinimax(), WithDepth(2))
	result := searcher.SearchResult{Score: 35, Nodes: 421, Elapsed: 7 * time.Millisecond}

	metric := a.Metric(result)
	require.Equal(t, metrics.SearchMetric{
		Strategy: "minimax",
		Depth:    2,
		Score:    35,
		Nodes:    421,
		Duration: 7 * time.Millisecond,
	}, metric)
}

func TestRandomAgentIsDeterministicPerSeed(t *testing.T) {
	first, err := NewRandomAgent(11).ChooseMove(context.Background(), game.NewBoard())
	require.NoError(t, err)
	second, err := NewRandomAgent(11).ChooseMove(context.Background(), game.NewBoard())
	require.NoError(t, err)

	require.Equal(t, first.Move.String(), second.Move.String())
	require.Equal(t, uint64(1), first.Nodes)
}

func TestRandomAgentNoLegalMove(t *testing.T) {
	board, err := game.NewBoardFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)

	_, err = NewRandomAgent(1).ChooseMove(context.Background(), board)
	require.ErrorIs(t, err, searcher.ErrNoLegalMove)
}

package searcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gambit/game"
)

var equivalenceFENs = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"rnbqkb1r/ppp2ppp/5n2/3pp3/4P3/2NP4/PPP2PPP/R1BQKBNR b KQkq - 0 4",
	"8/5pk1/6p1/8/8/6P1/R4PK1/4r3 w - - 0 1",
	"6k1/8/6K1/8/8/8/8/R7 w - - 0 1",
}

func TestAlphaBetaMatchesMinimaxScore(t *testing.T) {
	for depth := 1; depth <= 3; depth++ {
		for _, fen := range equivalenceFENs {
			board, err := game.NewBoardFromFEN(fen)
			require.NoError(t, err)

			reference, err := NewMinimax().Search(context.Background(), board, depth, game.EvaluatePosition)
			require.NoError(t, err)
			pruned, err := NewAlphaBeta().Search(context.Background(), board, depth, game.EvaluatePosition)
			require.NoError(t, err)

			require.Equalf(t, reference.Score, pruned.Score,
				"score diverged at depth %d for %s", depth, fen)
			require.LessOrEqualf(t, pruned.Nodes, reference.Nodes,
				"pruning searched more nodes at depth %d for %s", depth, fen)
		}
	}
}

func TestAlphaBetaPrunesDeepSearches(t *testing.T) {
	board, err := game.NewBoardFromFEN("r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")
	require.NoError(t, err)

	reference, err := NewMinimax().Search(context.Background(), board, 3, game.EvaluatePosition)
	require.NoError(t, err)
	pruned, err := NewAlphaBeta().Search(context.Background(), board, 3, game.EvaluatePosition)
	require.NoError(t, err)

	require.Less(t, pruned.Nodes, reference.Nodes,
		"a depth-3 middlegame search must produce cutoffs")
}

func TestAlphaBetaCutsProvablyInferiorBranch(t *testing.T) {
	// Classic pruning shape: after the first minimizing branch settles on 4,
	// the second branch's first leaf (3) proves the whole branch inferior, so
	// its second leaf is never visited.
	root := branch(game.White,
		mv("a").to(branch(game.Black,
			mv("a1").to(leaf(game.White, 5)),
			mv("a2").to(leaf(game.White, 4)),
		)),
		mv("b").to(branch(game.Black,
			mv("b1").to(leaf(game.White, 3)),
			mv("b2").to(leaf(game.White, 9)),
		)),
	)

	reference, err := NewMinimax().Search(context.Background(), newStubPosition(root), 2, stubEvaluate)
	require.NoError(t, err)
	pruned, err := NewAlphaBeta().Search(context.Background(), newStubPosition(root), 2, stubEvaluate)
	require.NoError(t, err)

	require.Equal(t, 4, reference.Score)
	require.Equal(t, 4, pruned.Score)
	require.Equal(t, "a", pruned.Move.String())
	require.Equal(t, uint64(6), reference.Nodes)
	require.Equal(t, uint64(5), pruned.Nodes, "leaf b2 must be pruned")
}

func TestAlphaBetaDepthZero(t *testing.T) {
	board := game.NewBoard()

	result, err := NewAlphaBeta().Search(context.Background(), board, 0, game.EvaluatePosition)
	require.NoError(t, err)
	require.Nil(t, result.Move)
	require.Equal(t, game.EvaluatePosition(board), result.Score)
}

func TestAlphaBetaFindsMateInOne(t *testing.T) {
	board, err := game.NewBoardFromFEN(mateInOneFEN)
	require.NoError(t, err)

	result, err := NewAlphaBeta().Search(context.Background(), board, 2, game.EvaluatePosition)
	require.NoError(t, err)
	require.Equal(t, "a1a8", result.Move.String())
	require.Equal(t, game.MateValue-1, result.Score)
}

func TestAlphaBetaRejectsBadDepth(t *testing.T) {
	board := game.NewBoard()

	_, err := NewAlphaBeta().Search(context.Background(), board, maxPrunedDepth+1, game.EvaluatePosition)
	require.ErrorIs(t, err, ErrInvalidDepth)
}

func TestAlphaBetaCancelledSearchKeepsCompletedBestMove(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewAlphaBeta().Search(ctx, newStubPosition(trappedTree()), 2, stubEvaluate)
	require.NoError(t, err)
	require.Equal(t, "good", result.Move.String(), "a truncated score must not displace a completed move")
	require.Equal(t, 100, result.Score)
}

func TestAlphaBetaDeterminism(t *testing.T) {
	board, err := game.NewBoardFromFEN("rnbqkb1r/ppp2ppp/5n2/3pp3/4P3/2NP4/PPP2PPP/R1BQKBNR b KQkq - 0 4")
	require.NoError(t, err)

	first, err := NewAlphaBeta().Search(context.Background(), board, 3, game.EvaluatePosition)
	require.NoError(t, err)
	second, err := NewAlphaBeta().Search(context.Background(), board, 3, game.EvaluatePosition)
	require.NoError(t, err)

	require.Equal(t, first.Move.String(), second.Move.String())
	require.Equal(t, first.Score, second.Score)
	require.Equal(t, first.Nodes, second.Nodes)
}

func TestOrderMovesPutsCapturesFirst(t *testing.T) {
	quiet := stubMove{id: "quiet"}
	capture := stubMove{id: "capture", capture: true}
	check := stubMove{id: "check", check: true}

	ordered := orderMoves([]game.Move{quiet, check, capture})

	require.Equal(t, "capture", ordered[0].String())
	require.Equal(t, "check", ordered[1].String())
	require.Equal(t, "quiet", ordered[2].String())
}

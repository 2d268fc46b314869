package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gambit/engine"
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
	"gambit/searcher/agent"
)

// Benchmark positions: the starting position, an open middlegame and a rook
// endgame.
var benchmarkFENs = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"8/5pk1/6p1/8/8/6P1/R4PK1/4r3 w - - 0 1",
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	ctx := context.Background()
	runPruningExperiment(ctx)
	runMatchExperiment(ctx)
}

// runPruningExperiment compares how many nodes each strategy visits for the
// same positions and depth.
func runPruningExperiment(ctx context.Context) {
	const depth = 3
	strategies := []searcher.Strategy{
		searcher.NewMinimax(),
		searcher.NewAlphaBeta(),
		searcher.NewExpectimax(),
	}

	var records []metrics.MoveMetric
	for i, fen := range benchmarkFENs {
		board, err := game.NewBoardFromFEN(fen)
		if err != nil {
			log.Fatal().Err(err).Str("fen", fen).Msg("bad benchmark position")
		}
		for _, strategy := range strategies {
			result, err := strategy.Search(ctx, board, depth, game.EvaluatePosition)
			if err != nil {
				log.Fatal().Err(err).Str("strategy", strategy.Name()).Msg("search failed")
			}
			log.Info().
				Int("position", i+1).
				Str("strategy", strategy.Name()).
				Str("move", result.Move.String()).
				Int("score", result.Score).
				Uint64("nodes", result.Nodes).
				Dur("elapsed", result.Elapsed).
				Msg("benchmark search")
			records = append(records, metrics.MoveMetric{
				Step:   i + 1,
				Player: strategy.Name(),
				Move:   result.Move.String(),
				SearchMetric: metrics.SearchMetric{
					Strategy: strategy.Name(),
					Depth:    depth,
					Score:    result.Score,
					Nodes:    result.Nodes,
					Duration: result.Elapsed,
				},
			})
		}
	}

	writeRecords(records, nil)
}

// runMatchExperiment plays alpha-beta against plain minimax.
func runMatchExperiment(ctx context.Context) {
	white := agent.NewSearchAgent(searcher.NewAlphaBeta(), agent.WithDepth(3))
	black := agent.NewSearchAgent(searcher.NewMinimax(), agent.WithDepth(2))

	e := engine.NewLocal(white, black, engine.WithMaxMoves(80))
	gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}

	writeRecords(moveMetrics, []metrics.GameMetric{gameMetric})
}

func writeRecords(moves []metrics.MoveMetric, games []metrics.GameMetric) {
	writer, err := metrics.NewWriter("experiments/results")
	if err != nil {
		log.Fatal().Err(err).Msg("create results writer")
	}
	if len(moves) > 0 {
		if err := writer.WriteMoveMetrics(moves); err != nil {
			log.Fatal().Err(err).Msg("write move metrics")
		}
	}
	if len(games) > 0 {
		if err := writer.WriteGameMetrics(games); err != nil {
			log.Fatal().Err(err).Msg("write game metrics")
		}
	}
	log.Info().Str("dir", writer.Dir()).Msg("records written")
}

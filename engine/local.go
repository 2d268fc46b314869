package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
	"gambit/searcher/agent"
)

// Outcome strings reported in GameMetric.
const (
	OutcomeWhiteWins  = "white"
	OutcomeBlackWins  = "black"
	OutcomeDraw       = "draw"
	OutcomeUnfinished = "unfinished"
)

// Option configures a Local engine.
type Option func(*Local)

// WithBoard starts the game from a prepared position instead of the standard
// starting position.
func WithBoard(board *game.Board) Option {
	return func(e *Local) {
		if board != nil {
			e.board = board
		}
	}
}

// WithMaxMoves overrides the half-move cap.
func WithMaxMoves(maxMoves int) Option {
	return func(e *Local) {
		if maxMoves > 0 {
			e.maxMoves = maxMoves
		}
	}
}

// Local plays two agents against each other on one board.
type Local struct {
	board    *game.Board
	white    agent.Agent
	black    agent.Agent
	maxMoves int
}

func NewLocal(white, black agent.Agent, options ...Option) *Local {
	e := &Local{
		board:    game.NewBoard(),
		white:    white,
		black:    black,
		maxMoves: DefaultMaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run loops agents until checkmate, stalemate, draw or the move cap, and
// reports the outcome with per-move search metrics.
func (e *Local) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	start := time.Now()
	log.Info().
		Str("white", e.white.Name()).
		Str("black", e.black.Name()).
		Msg("game started")

	var moveMetrics []metrics.MoveMetric
	step := 0
	for step < e.maxMoves && !e.gameOver() {
		current := e.white
		if e.board.SideToMove() == game.Black {
			current = e.black
		}

		result, err := current.ChooseMove(ctx, e.board)
		if errors.Is(err, searcher.ErrNoLegalMove) {
			break
		}
		if err != nil {
			return metrics.GameMetric{}, moveMetrics, fmt.Errorf("move %d (%s): %w", step+1, current.Name(), err)
		}
		if err := e.board.Apply(result.Move); err != nil {
			return metrics.GameMetric{}, moveMetrics, fmt.Errorf("move %d (%s): %w", step+1, current.Name(), err)
		}
		step++

		log.Info().
			Int("step", step).
			Str("player", current.Name()).
			Str("move", result.Move.String()).
			Int("score", result.Score).
			Uint64("nodes", result.Nodes).
			Dur("elapsed", result.Elapsed).
			Msg("move played")

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       current.Name(),
			Move:         result.Move.String(),
			SearchMetric: searchMetric(current, result),
		})
	}

	outcome := e.outcome(step)
	log.Info().
		Str("outcome", outcome).
		Int("moves", step).
		Str("fen", e.board.FEN()).
		Msg("game over")

	return metrics.GameMetric{
		White:      e.white.Name(),
		Black:      e.black.Name(),
		Outcome:    outcome,
		StartTime:  start,
		Duration:   time.Since(start),
		TotalMoves: step,
	}, moveMetrics, nil
}

func (e *Local) gameOver() bool {
	return e.board.IsCheckmate() || e.board.IsStalemate() || e.board.IsDraw()
}

func (e *Local) outcome(moves int) string {
	switch {
	case e.board.IsCheckmate():
		if e.board.SideToMove() == game.White {
			return OutcomeBlackWins
		}
		return OutcomeWhiteWins
	case e.board.IsStalemate(), e.board.IsDraw():
		return OutcomeDraw
	case moves >= e.maxMoves:
		return OutcomeDraw
	default:
		return OutcomeUnfinished
	}
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

// Package engine runs complete games between agents on a local board.
package engine

import (
	"context"

	"gambit/experiments/metrics"
)

// DefaultMaxMoves caps a game in half-moves so mismatched agents cannot
// shuffle pieces forever. The board does not track repetition, so the cap is
// also the draw-by-boredom rule.
const DefaultMaxMoves = 300

// Engine plays one game to completion.
type Engine interface {
	Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error)
}

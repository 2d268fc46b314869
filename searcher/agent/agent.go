// Package agent wraps search strategies behind a uniform "given a position,
// return a move" interface with instrumentation.
package agent

import (
	"context"

	"gambit/game"
	"gambit/searcher"
)

// Agent chooses moves for one side of a game.
type Agent interface {
	// ChooseMove picks a move for the side to move in pos. It fails with
	// searcher.ErrNoLegalMove when the position is terminal; callers are
	// expected to check terminal state first.
	ChooseMove(ctx context.Context, pos game.Position) (searcher.SearchResult, error)
	Name() string
}

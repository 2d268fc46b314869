// Package searcher implements bounded-depth game-tree search over a rules
// oracle: plain minimax, its alpha-beta-pruned variant, and expectimax for
// stochastic opponents. Scores are centipawns under an absolute convention,
// positive favoring White; White-to-move nodes maximize, Black-to-move nodes
// minimize. Each Search call is a fresh stateless descent, so one Strategy
// value may serve concurrent searches as long as every call gets its own
// Position.
package searcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gambit/game"
)

var (
	// ErrInvalidDepth reports a depth outside the strategy's usable range.
	ErrInvalidDepth = errors.New("search depth out of range")
	// ErrNoLegalMove reports a root position with no legal moves. Callers are
	// expected to check terminal state before searching; this is a defensive
	// contract, not the normal termination path.
	ErrNoLegalMove = errors.New("no legal move in position")
)

const infinity = math.MaxInt32

// Full-width strategies blow up around depth 6; pruning buys a few more plies.
const (
	maxUnprunedDepth = 6
	maxPrunedDepth   = 10
)

// cancelInterval is how many node visits pass between context polls.
const cancelInterval = 2048

// SearchResult is the outcome of one top-level search: the chosen move (nil
// when the search was asked for depth 0), its score, and instrumentation.
type SearchResult struct {
	Move    game.Move
	Score   int
	Nodes   uint64
	Elapsed time.Duration
}

// Strategy is a search algorithm. Implementations guarantee the same score
// for the same position, depth and evaluator on every call; the chosen move
// is the first one in enumeration order to reach that score.
type Strategy interface {
	Name() string
	// MaxDepth is the deepest search the strategy accepts.
	MaxDepth() int
	// Search explores pos to the given ply depth and reports the best move
	// for the side to move. Depth 0 returns the static evaluation with no
	// move. When ctx expires mid-search, the best move found so far is
	// returned and the position is restored; cancellation is not an error.
	Search(ctx context.Context, pos game.Position, depth int, evaluate game.Evaluate) (SearchResult, error)
}

// run carries the per-call state every strategy shares: the borrowed
// position, the evaluator, the node counter and the cancellation flag.
type run struct {
	ctx      context.Context
	pos      game.Position
	evaluate game.Evaluate
	nodes    uint64
	stopped  bool
}

func newRun(ctx context.Context, pos game.Position, evaluate game.Evaluate) *run {
	return &run{ctx: ctx, pos: pos, evaluate: evaluate}
}

// countNode increments the node counter, polling the context at a bounded
// interval so a deadline can end the search early.
func (r *run) countNode() {
	r.nodes++
	if r.nodes%cancelInterval == 0 {
		select {
		case <-r.ctx.Done():
			r.stopped = true
		default:
		}
	}
}

// descend applies mv, runs fn on the resulting position and reverts the move
// before returning. The undo happens on every path, including errors from fn,
// which keeps the make/unmake stack balanced all the way to the root.
func (r *run) descend(mv game.Move, fn func() (int, error)) (int, error) {
	if err := r.pos.Apply(mv); err != nil {
		return 0, fmt.Errorf("apply %v: %w", mv, err)
	}
	score, searchErr := fn()
	if err := r.pos.Undo(); err != nil {
		return 0, fmt.Errorf("undo %v: %w", mv, err)
	}
	return score, searchErr
}

// mateScore converts a checkmate seen ply half-moves below the root into a
// signed score, discounted by ply so nearer mates dominate.
func mateScore(side game.Color, ply int) int {
	if side == game.White {
		return -(game.MateValue - ply)
	}
	return game.MateValue - ply
}

// leafScore resolves the shared base case: checkmates score by distance from
// the root, everything else is the evaluator's business.
func (r *run) leafScore(ply int) int {
	if r.pos.IsCheckmate() {
		return mateScore(r.pos.SideToMove(), ply)
	}
	return r.evaluate(r.pos)
}

// terminal reports whether the current position ends the descent.
func (r *run) terminal() bool {
	return r.pos.IsCheckmate() || r.pos.IsStalemate() || r.pos.IsDraw()
}

func validateDepth(s Strategy, depth int) error {
	if depth < 0 || depth > s.MaxDepth() {
		return fmt.Errorf("%s depth %d (max %d): %w", s.Name(), depth, s.MaxDepth(), ErrInvalidDepth)
	}
	return nil
}

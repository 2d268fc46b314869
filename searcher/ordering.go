package searcher

import (
	"golang.org/x/exp/slices"

	"gambit/game"
)

// orderMoves sorts captures ahead of checks ahead of quiet moves, keeping
// enumeration order within each class. Better ordering only changes how many
// nodes alpha-beta visits, never the score it reports.
func orderMoves(moves []game.Move) []game.Move {
	ordered := slices.Clone(moves)
	slices.SortStableFunc(ordered, func(a, b game.Move) int {
		return movePriority(b) - movePriority(a)
	})
	return ordered
}

func movePriority(m game.Move) int {
	switch {
	case m.IsCapture():
		return 2
	case m.IsCheck():
		return 1
	default:
		return 0
	}
}

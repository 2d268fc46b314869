// Package puzzle loads lichess-style tactics puzzles and scores agents
// against them.
package puzzle

import (
	"fmt"

	"gambit/game"
)

// Puzzle is one row of the lichess puzzle database. The first move in Moves
// is the opponent's setup move; the rest are the solution line, all in UCI
// notation.
type Puzzle struct {
	ID              string
	FEN             string
	Moves           []string
	Rating          int
	RatingDeviation int
	Popularity      int
	NbPlays         int
	Themes          []string
	GameURL         string
}

// SolutionMoves returns the solution line, without the setup move.
func (p Puzzle) SolutionMoves() []string {
	if len(p.Moves) < 2 {
		return nil
	}
	return p.Moves[1:]
}

// FirstSolutionMove returns the move an agent must find, or "" when the
// puzzle has no solution line.
func (p Puzzle) FirstSolutionMove() string {
	solution := p.SolutionMoves()
	if len(solution) == 0 {
		return ""
	}
	return solution[0]
}

// Board returns the position to solve: the FEN position with the setup move
// already played.
func (p Puzzle) Board() (*game.Board, error) {
	board, err := game.NewBoardFromFEN(p.FEN)
	if err != nil {
		return nil, fmt.Errorf("puzzle %s: %w", p.ID, err)
	}
	if len(p.Moves) > 0 {
		if err := board.ApplyUCI(p.Moves[0]); err != nil {
			return nil, fmt.Errorf("puzzle %s setup: %w", p.ID, err)
		}
	}
	return board, nil
}

func (p Puzzle) HasTheme(theme string) bool {
	for _, t := range p.Themes {
		if t == theme {
			return true
		}
	}
	return false
}

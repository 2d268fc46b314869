package puzzle

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadOption filters which puzzles Load keeps.
type LoadOption func(*loadConfig)

type loadConfig struct {
	minRating int
	maxRating int
	themes    []string
	limit     int
}

func WithMinRating(rating int) LoadOption {
	return func(c *loadConfig) { c.minRating = rating }
}

func WithMaxRating(rating int) LoadOption {
	return func(c *loadConfig) { c.maxRating = rating }
}

// WithThemes keeps only puzzles carrying every listed theme.
func WithThemes(themes ...string) LoadOption {
	return func(c *loadConfig) { c.themes = themes }
}

// WithLimit stops after the first n matching puzzles.
func WithLimit(n int) LoadOption {
	return func(c *loadConfig) { c.limit = n }
}

// Load reads puzzles from a lichess puzzle CSV file
// (PuzzleId,FEN,Moves,Rating,RatingDeviation,Popularity,NbPlays,Themes,GameUrl)
// applying the given filters in file order.
func Load(path string, options ...LoadOption) ([]Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open puzzle file: %w", err)
	}
	defer f.Close()
	return load(f, options...)
}

func load(r io.Reader, options ...LoadOption) ([]Puzzle, error) {
	config := loadConfig{}
	for _, option := range options {
		option(&config)
	}

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read puzzle header: %w", err)
	}
	column := make(map[string]int, len(header))
	for i, name := range header {
		column[name] = i
	}
	for _, required := range []string{"PuzzleId", "FEN", "Moves", "Rating"} {
		if _, ok := column[required]; !ok {
			return nil, fmt.Errorf("puzzle file missing column %q", required)
		}
	}

	var puzzles []Puzzle
	for {
		if config.limit > 0 && len(puzzles) >= config.limit {
			break
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read puzzle row: %w", err)
		}
		p, err := parseRow(row, column)
		if err != nil {
			return nil, err
		}
		if !passes(p, config) {
			continue
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, nil
}

func parseRow(row []string, column map[string]int) (Puzzle, error) {
	field := func(name string) string {
		i, ok := column[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	number := func(name string) int {
		n, _ := strconv.Atoi(field(name))
		return n
	}

	rating, err := strconv.Atoi(field("Rating"))
	if err != nil {
		return Puzzle{}, fmt.Errorf("puzzle %s: bad rating %q", field("PuzzleId"), field("Rating"))
	}
	return Puzzle{
		ID:              field("PuzzleId"),
		FEN:             field("FEN"),
		Moves:           strings.Fields(field("Moves")),
		Rating:          rating,
		RatingDeviation: number("RatingDeviation"),
		Popularity:      number("Popularity"),
		NbPlays:         number("NbPlays"),
		Themes:          strings.Fields(field("Themes")),
		GameURL:         field("GameUrl"),
	}, nil
}

func passes(p Puzzle, config loadConfig) bool {
	if config.minRating > 0 && p.Rating < config.minRating {
		return false
	}
	if config.maxRating > 0 && p.Rating > config.maxRating {
		return false
	}
	for _, theme := range config.themes {
		if !p.HasTheme(theme) {
			return false
		}
	}
	return true
}

package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer persists experiment records as CSV files under a timestamped
// directory, one file per record kind.
type Writer struct {
	baseDir string
}

// NewWriter creates a subdirectory of root named by the current UTC time and
// returns a writer targeting it.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create results directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir returns the directory records are written into.
func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write %s row: %w", name, err)
		}
	}
	return nil
}

func (w *Writer) WriteGameMetrics(records []GameMetric) error {
	header := []string{"white", "black", "outcome", "start_time", "duration", "total_moves"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			record.White,
			record.Black,
			record.Outcome,
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		}
	}
	return w.writeCSV("game_metrics.csv", header, rows)
}

func (w *Writer) WriteMoveMetrics(records []MoveMetric) error {
	header := []string{"step", "player", "move", "strategy", "depth", "score", "nodes", "duration"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			record.Strategy,
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Score),
			strconv.FormatUint(record.Nodes, 10),
			record.Duration.String(),
		}
	}
	return w.writeCSV("move_metrics.csv", header, rows)
}

func (w *Writer) WritePuzzleRecords(records []PuzzleRecord) error {
	header := []string{"puzzle_id", "rating", "agent", "expected", "got", "solved", "strategy", "depth", "nodes", "duration"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			record.PuzzleID,
			strconv.Itoa(record.Rating),
			record.Agent,
			record.Expected,
			record.Got,
			strconv.FormatBool(record.Solved),
			record.Strategy,
			strconv.Itoa(record.Depth),
			strconv.FormatUint(record.Nodes, 10),
			record.Duration.String(),
		}
	}
	return w.writeCSV("puzzle_records.csv", header, rows)
}

package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	AgentConfigsFile = "agent_configs.csv"
	GameRecordsFile  = "game_records.csv"
	MoveRecordsFile  = "move_records.csv"
)

type GameRecord struct {
	ID         int
	Run        string
	BlackAgent int // AgentConfig.ID
	WhiteAgent int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	dir string
}

// NewWriter creates <baseDir>/<name>/<timestamp> and writes every file there.
func NewWriter(baseDir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	dir := filepath.Join(baseDir, name, timestamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}
	return &Writer{dir: dir}, nil
}

func (w *Writer) Dir() string { return w.dir }

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Strategy,
			strconv.Itoa(config.Depth),
			strconv.FormatUint(config.Seed, 10),
			strconv.FormatBool(config.FixedWindow),
			config.URL,
		})
	}
	header := []string{"id", "strategy", "depth", "seed", "fixed_window", "url"}
	return w.write(AgentConfigsFile, header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Run,
			strconv.Itoa(record.BlackAgent),
			strconv.Itoa(record.WhiteAgent),
			record.StartingSide,
			record.Winner,
			strconv.Itoa(record.Black),
			strconv.Itoa(record.White),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Passes),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{
		"id", "run", "black_agent", "white_agent", "starting_side", "winner",
		"black_discs", "white_discs", "total_moves", "passes", "start_time", "end_time", "duration",
	}
	return w.write(GameRecordsFile, header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Side,
			strconv.Itoa(record.Move),
			record.Strategy,
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.Cutoffs),
		})
	}
	header := []string{"game", "step", "side", "move", "strategy", "depth", "duration", "nodes", "leaves", "cutoffs"}
	return w.write(MoveRecordsFile, header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", name)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return errors.Wrapf(err, "failed to write %s header", name)
	}
	if err := writer.WriteAll(rows); err != nil {
		return errors.Wrapf(err, "failed to write %s rows", name)
	}
	return nil
}

package experiments

import (
	"fmt"
	"io"

	"othello/agent"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/searcher"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Name      string
	Games     int // meta.NUM_GAMES when zero
	Layout    string
	First     metrics.AgentConfig // plays Black, or every even game with Alternate
	Second    metrics.AgentConfig
	Alternate bool
	OutDir    string    // records are written under it when set
	Progress  io.Writer // progress bar output; none when nil
}

type Summary struct {
	Run       string
	Games     int
	Wins      map[int]int // by AgentConfig.ID
	Ties      int
	BlackWins int
	WhiteWins int
	Dir       string // where records went, if anywhere
}

// Run plays the configured match-up and tallies the results.
func Run(cfg Config) (Summary, error) {
	if cfg.Games <= 0 {
		cfg.Games = meta.NUM_GAMES
	}
	if cfg.Layout == "" {
		cfg.Layout = game.InitialLayout
	}
	if cfg.Name == "" {
		cfg.Name = fmt.Sprintf("%s-vs-%s", cfg.First.Strategy, cfg.Second.Strategy)
	}
	if cfg.First.ID == cfg.Second.ID {
		return Summary{}, errors.Errorf("agent configs share id %d", cfg.First.ID)
	}
	board, err := game.NewBoard(cfg.Layout)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Run:  uuid.New().String(),
		Wins: map[int]int{cfg.First.ID: 0, cfg.Second.ID: 0},
	}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	var bar *Bar
	if cfg.Progress != nil {
		bar = NewBar(cfg.Games, cfg.Name, cfg.Progress)
		defer bar.Close()
	}

	log.Info().Msgf("starting %s experiment %s with %d games", cfg.Name, summary.Run, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		black, white := cfg.First, cfg.Second
		if cfg.Alternate && i%2 == 1 {
			black, white = white, black
		}

		outcome, gameMetric, moveMetrics, err := runGame(black, white, board, uint64(i))
		if err != nil {
			return summary, errors.Wrapf(err, "game %d", i+1)
		}

		summary.Games++
		switch {
		case outcome.Tie:
			summary.Ties++
		case outcome.Winner == game.Black:
			summary.BlackWins++
			summary.Wins[black.ID]++
		default:
			summary.WhiteWins++
			summary.Wins[white.ID]++
		}

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i,
			Run:        summary.Run,
			BlackAgent: black.ID,
			WhiteAgent: white.ID,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: i, MoveMetric: mm})
		}

		log.Debug().Msgf("completed game %d of %d: %d-%d", i+1, cfg.Games, outcome.Black, outcome.White)
		if bar != nil {
			bar.Add(1)
		}
	}
	log.Info().Msgf("completed %s experiment: %d wins for agent %d, %d for agent %d, %d ties",
		cfg.Name, summary.Wins[cfg.First.ID], cfg.First.ID, summary.Wins[cfg.Second.ID], cfg.Second.ID, summary.Ties)

	if cfg.OutDir == "" {
		return summary, nil
	}
	dir, err := store(cfg, gameRecords, moveRecords)
	summary.Dir = dir
	return summary, err
}

func store(cfg Config, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(cfg.OutDir, cfg.Name)
	if err != nil {
		return "", errors.Wrap(err, "failed to create experiment writer")
	}
	if err := writer.WriteAgentConfigs([]metrics.AgentConfig{cfg.First, cfg.Second}); err != nil {
		return "", errors.Wrap(err, "failed to store agent configs")
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", errors.Wrap(err, "failed to store game records")
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", errors.Wrap(err, "failed to store move records")
	}
	log.Info().Msgf("stored records in %s", writer.Dir())
	return writer.Dir(), nil
}

// runGame plays one game; offset varies the random agents between games.
func runGame(black, white metrics.AgentConfig, board game.Board, offset uint64) (engine.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	blackAgent, err := createAgent(black, offset)
	if err != nil {
		return engine.Outcome{}, metrics.GameMetric{}, nil, err
	}
	whiteAgent, err := createAgent(white, offset)
	if err != nil {
		return engine.Outcome{}, metrics.GameMetric{}, nil, err
	}
	return engine.New(blackAgent, whiteAgent, board).Run()
}

func createAgent(config metrics.AgentConfig, offset uint64) (agent.Agent, error) {
	strategy, err := agent.ParseStrategy(config.Strategy)
	if err != nil {
		return nil, err
	}
	if strategy == agent.Human {
		return nil, errors.New("experiments cannot include human players")
	}
	if config.URL != "" {
		remote := engine.NewRemoteAgent(config.URL, string(strategy))
		remote.Depth = config.Depth
		return remote, nil
	}

	options := []agent.Option{agent.WithSeed(config.Seed + offset), agent.WithMetrics()}
	if config.Depth > 0 {
		options = append(options, agent.WithSearchOptions(searcher.WithDepth(config.Depth)))
	}
	if config.FixedWindow {
		options = append(options, agent.WithSearchOptions(searcher.WithFixedWindow()))
	}
	return agent.New(strategy, options...)
}

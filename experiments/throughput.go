package experiments

import (
	"time"

	"othello/agent"
	"othello/engine"
	"othello/game"
	"othello/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const FixedWindowName = searcher.AlphaBetaName + "-fixed"

type ThroughputResult struct {
	Searcher  string
	Depth     int
	Positions int
	Nodes     int
	Leaves    int
	Cutoffs   int
	Duration  time.Duration
}

func (r ThroughputResult) NodesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Nodes) / r.Duration.Seconds()
}

// position is a board and the side to move on it.
type position struct {
	board game.Board
	side  game.Side
}

// RunThroughputExperiment replays one seeded random game and searches every
// position with each searcher at depths 1 to maxDepth.
func RunThroughputExperiment(maxDepth int, seed uint64) ([]ThroughputResult, error) {
	positions, err := samplePositions(seed)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("starting throughput experiment on %d positions...", len(positions))
	var results []ThroughputResult
	for depth := 1; depth <= maxDepth; depth++ {
		searchers := []struct {
			name     string
			searcher searcher.Searcher
		}{
			{searcher.MinimaxName, searcher.NewMinimax(searcher.WithDepth(depth), searcher.WithMetrics())},
			{searcher.AlphaBetaName, searcher.NewAlphaBeta(searcher.WithDepth(depth), searcher.WithMetrics())},
			{FixedWindowName, searcher.NewAlphaBeta(searcher.WithDepth(depth), searcher.WithMetrics(), searcher.WithFixedWindow())},
		}
		for _, s := range searchers {
			result := ThroughputResult{Searcher: s.name, Depth: depth}
			for _, p := range positions {
				_, metric := s.searcher.Search(p.board, p.side)
				result.Positions++
				result.Nodes += metric.Nodes
				result.Leaves += metric.Leaves
				result.Cutoffs += metric.Cutoffs
				result.Duration += metric.Duration
			}
			log.Info().Msgf("%s at depth %d: %d nodes, %d cutoffs, %.0f nodes/s",
				s.name, depth, result.Nodes, result.Cutoffs, result.NodesPerSecond())
			results = append(results, result)
		}
	}
	log.Info().Msg("completed throughput experiment")
	return results, nil
}

func samplePositions(seed uint64) ([]position, error) {
	black, err := agent.New(agent.Random, agent.WithSeed(seed))
	if err != nil {
		return nil, err
	}
	white, err := agent.New(agent.Random, agent.WithSeed(seed+1))
	if err != nil {
		return nil, err
	}

	positions := []position{{board: game.InitialBoard(), side: game.Black}}
	e := engine.New(black, white, game.InitialBoard(), engine.WithObserver(func(u engine.Update) {
		if !u.Board.IsTerminal() {
			positions = append(positions, position{board: u.Board, side: u.Side.Opponent()})
		}
	}))
	if _, _, _, err := e.Run(); err != nil {
		return nil, errors.Wrap(err, "failed to sample positions")
	}
	return positions, nil
}

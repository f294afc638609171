package engine

import (
	"time"

	"othello/agent"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Outcome is the final position of a game and its result.
type Outcome struct {
	Board    game.Board
	Black    int
	White    int
	Winner   game.Side
	Tie      bool
	Finished bool // false when the turn cap stopped the game
}

// Update is one decision of a game: a move, or a pass when Move is game.NoMove.
type Update struct {
	Step  int
	Side  game.Side
	Move  int
	Board game.Board
	Hash  game.StateHash
}

type Option func(e *LocalEngine)

// WithObserver is called after every decision.
func WithObserver(observer func(Update)) Option {
	return func(e *LocalEngine) {
		e.observer = observer
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

type LocalEngine struct {
	Board    game.Board
	agents   [2]agent.Agent
	maxTurns int
	observer func(Update)
}

// New pits two in-process agents against each other. Black moves first.
func New(black, white agent.Agent, board game.Board, options ...Option) *LocalEngine {
	if black == nil || white == nil {
		panic("need an agent for both sides")
	}
	e := &LocalEngine{
		Board:    board,
		agents:   [2]agent.Agent{game.Black: black, game.White: white},
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop. A side without legal moves passes; the game
// ends when neither side can move.
func (e *LocalEngine) Run() (Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	side := game.Black
	gameMetric := metrics.GameMetric{
		StartingSide: side.String(),
		StartTime:    time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%v is starting", side)
	for step := 0; step < e.maxTurns && !e.Board.IsTerminal(); step++ {
		move, searchMetric, err := e.agents[side].FindMove(e.Board, side)
		if err != nil {
			return Outcome{}, gameMetric, moveMetrics, errors.Wrapf(err, "%v failed to find a move", side)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Side:         side.String(),
			Move:         move,
			SearchMetric: searchMetric,
		})

		if move == game.NoMove {
			if e.Board.LegalMoves(side).Len() > 0 {
				return Outcome{}, gameMetric, moveMetrics, errors.WithStack(&game.IllegalMoveError{Move: game.Move{Cell: move, Side: side}})
			}
			log.Debug().Msgf("%v has no legal moves and passes", side)
			gameMetric.Passes++
		} else {
			next, err := e.Board.Play(move, side)
			if err != nil {
				return Outcome{}, gameMetric, moveMetrics, err
			}
			log.Debug().Msgf("step %d: %v plays %d", step, side, move)
			e.Board = next
			gameMetric.TotalMoves++
		}

		if e.observer != nil {
			e.observer(Update{Step: step, Side: side, Move: move, Board: e.Board, Hash: e.Board.Hash()})
		}
		side = side.Opponent()
	}

	outcome := e.outcome()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Black = outcome.Black
	gameMetric.White = outcome.White
	if !outcome.Tie {
		gameMetric.Winner = outcome.Winner.String()
	}

	if !outcome.Finished {
		log.Warn().Msgf("stopped after %d turns without a result", e.maxTurns)
	} else if outcome.Tie {
		log.Info().Msgf("game over: tie at %d-%d", outcome.Black, outcome.White)
	} else {
		log.Info().Msgf("game over: %v wins %d-%d", outcome.Winner, outcome.Black, outcome.White)
	}
	return outcome, gameMetric, moveMetrics, nil
}

func (e *LocalEngine) outcome() Outcome {
	winner, ok := e.Board.Winner()
	return Outcome{
		Board:    e.Board,
		Black:    e.Board.Discs(game.Black),
		White:    e.Board.Discs(game.White),
		Winner:   winner,
		Tie:      !ok,
		Finished: e.Board.IsTerminal(),
	}
}

package searcher

import (
	"othello/experiments/metrics"
	"othello/game"
)

const (
	MinimaxName   = "minimax"
	AlphaBetaName = "alpha-beta"
)

// Result is the value of a searched position for the side the search was
// started for, and the root move achieving it.
type Result struct {
	Value int
	Move  int // game.NoMove when the root side must pass
}

type Searcher interface {
	Search(b game.Board, side game.Side) (Result, metrics.SearchMetric)
}

type Option func(c *config)

type config struct {
	depth       int
	evaluate    game.Evaluate
	metrics     metrics.Collector
	fixedWindow bool
}

func WithDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(c *config) {
		if evaluate != nil {
			c.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(c *config) {
		c.metrics = metrics.NewCollector()
	}
}

// WithFixedWindow hands every child the caller's window unchanged instead of
// narrowing it as better moves are found. Only alpha-beta reads it.
func WithFixedWindow() Option {
	return func(c *config) {
		c.fixedWindow = true
	}
}

func newConfig(depth int, options []Option) config {
	c := config{ // Default values
		depth:    depth,
		evaluate: game.EvaluateTwoPhase,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&c)
	}
	return c
}

// leaf scores a position from the root side's point of view.
func (c *config) leaf(b game.Board, root game.Side, lastMove int) Result {
	c.metrics.AddLeaf()
	return Result{Value: c.evaluate(b, root), Move: lastMove}
}

// play applies a move taken from LegalMoves, which cannot fail.
func play(b game.Board, cell int, side game.Side) game.Board {
	next, err := b.Play(cell, side)
	if err != nil {
		panic(err)
	}
	return next
}

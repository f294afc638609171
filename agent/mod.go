package agent

import (
	"io"
	"os"
	"strings"
	"time"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"

	"github.com/pkg/errors"
)

type Strategy string

const (
	Random    Strategy = "random"
	Human     Strategy = "human"
	Minimax   Strategy = searcher.MinimaxName
	AlphaBeta Strategy = searcher.AlphaBetaName
)

var Strategies = []Strategy{Random, Human, Minimax, AlphaBeta}

func ParseStrategy(s string) (Strategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, strategy := range Strategies {
		if s == string(strategy) {
			return strategy, nil
		}
	}
	return "", errors.Errorf("unknown strategy %q", s)
}

type Agent interface {
	// FindMove returns a legal cell for side, or game.NoMove when side must
	// pass, together with the search metrics (if collected).
	FindMove(b game.Board, side game.Side) (int, metrics.SearchMetric, error)
}

type Option func(o *options)

type options struct {
	seed   uint64
	source MoveSource
	search []searcher.Option
}

// WithSeed fixes the random agent's choices.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithInput makes the human agent read cell indices from r and prompt on w.
func WithInput(r io.Reader, w io.Writer) Option {
	return func(o *options) {
		o.source = NewReaderSource(r, w)
	}
}

func WithMoveSource(source MoveSource) Option {
	return func(o *options) {
		if source != nil {
			o.source = source
		}
	}
}

func WithMetrics() Option {
	return WithSearchOptions(searcher.WithMetrics())
}

func WithSearchOptions(search ...searcher.Option) Option {
	return func(o *options) {
		o.search = append(o.search, search...)
	}
}

func New(strategy Strategy, opts ...Option) (Agent, error) {
	o := options{seed: uint64(time.Now().UnixNano())}
	for _, opt := range opts {
		opt(&o)
	}

	switch strategy {
	case Random:
		return newRandomAgent(o.seed), nil
	case Human:
		if o.source == nil {
			o.source = NewReaderSource(os.Stdin, os.Stdout)
		}
		return &humanAgent{source: o.source}, nil
	case Minimax:
		return &searchAgent{searcher: searcher.NewMinimax(o.search...)}, nil
	case AlphaBeta:
		return &searchAgent{searcher: searcher.NewAlphaBeta(o.search...)}, nil
	}
	return nil, errors.Errorf("unknown strategy %q", strategy)
}

// ChooseMove picks side's move on b with a freshly built agent.
func ChooseMove(b game.Board, side game.Side, strategy Strategy, opts ...Option) (int, error) {
	a, err := New(strategy, opts...)
	if err != nil {
		return game.NoMove, err
	}
	move, _, err := a.FindMove(b, side)
	return move, err
}

type searchAgent struct {
	searcher searcher.Searcher
}

func (a *searchAgent) FindMove(b game.Board, side game.Side) (int, metrics.SearchMetric, error) {
	if b.LegalMoves(side).Len() == 0 {
		return game.NoMove, metrics.SearchMetric{}, nil
	}
	result, metric := a.searcher.Search(b, side)
	return result.Move, metric, nil
}

package agent

import (
	"bytes"
	"strings"
	"testing"

	"othello/game"
	"othello/searcher"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// stuck is a position where White has no legal move and Black has one.
func stuck(t *testing.T) game.Board {
	t.Helper()
	b, err := game.NewBoard("XOOOOOO." + strings.Repeat(".", 56))
	require.NoError(t, err)
	return b
}

type fixedSource struct {
	moves []int
	calls int
}

func (s *fixedSource) NextMove(b game.Board, side game.Side, legal []int) (int, error) {
	s.calls++
	if len(s.moves) == 0 {
		return game.NoMove, ErrNoInput
	}
	move := s.moves[0]
	s.moves = s.moves[1:]
	return move, nil
}

func TestParseStrategy(t *testing.T) {
	for _, strategy := range Strategies {
		got, err := ParseStrategy(" " + strings.ToUpper(string(strategy)) + " ")
		require.NoError(t, err)
		require.Equal(t, strategy, got)
	}

	_, err := ParseStrategy("mcts")
	require.Error(t, err)
	_, err = New("mcts")
	require.Error(t, err)
}

func TestEveryAgentPasses(t *testing.T) {
	source := &fixedSource{}
	for _, strategy := range Strategies {
		a, err := New(strategy, WithMoveSource(source))
		require.NoError(t, err)

		move, _, err := a.FindMove(stuck(t), game.White)

		require.NoError(t, err)
		require.Equal(t, game.NoMove, move, "%s should pass without legal moves", strategy)
	}
	require.Zero(t, source.calls, "The human should not be asked when there is nothing to choose")
}

func TestRandomAgent(t *testing.T) {
	t.Run("picks legal moves", func(t *testing.T) {
		a, err := New(Random, WithSeed(1))
		require.NoError(t, err)
		b := game.InitialBoard()

		for i := 0; i < 20; i++ {
			move, _, err := a.FindMove(b, game.Black)
			require.NoError(t, err)
			require.True(t, b.LegalMoves(game.Black).Has(move), "Move %d should be legal", move)
		}
	})

	t.Run("same seed same choices", func(t *testing.T) {
		first, err := New(Random, WithSeed(99))
		require.NoError(t, err)
		second, err := New(Random, WithSeed(99))
		require.NoError(t, err)

		b := game.InitialBoard()
		side := game.Black
		for !b.IsTerminal() {
			m1, _, err := first.FindMove(b, side)
			require.NoError(t, err)
			m2, _, err := second.FindMove(b, side)
			require.NoError(t, err)
			require.Equal(t, m1, m2)
			if m1 != game.NoMove {
				b, err = b.Play(m1, side)
				require.NoError(t, err)
			}
			side = side.Opponent()
		}
	})
}

func TestHumanAgent(t *testing.T) {
	t.Run("re-prompts until a legal move is read", func(t *testing.T) {
		var out bytes.Buffer
		a, err := New(Human, WithInput(strings.NewReader("corner\n11\n 34 \n"), &out))
		require.NoError(t, err)

		move, _, err := a.FindMove(game.InitialBoard(), game.Black)

		require.NoError(t, err)
		require.Equal(t, 34, move)
		require.Contains(t, out.String(), `"corner" is not a cell index`)
		require.Contains(t, out.String(), "11 is not a legal move")
		require.Contains(t, out.String(), "legal moves: [34 43 56 65]")
	})

	t.Run("end of input", func(t *testing.T) {
		var out bytes.Buffer
		a, err := New(Human, WithInput(strings.NewReader("99\n"), &out))
		require.NoError(t, err)

		_, _, err = a.FindMove(game.InitialBoard(), game.Black)

		require.True(t, errors.Is(err, ErrNoInput), "Got %v", err)
	})

	t.Run("rejects an illegal move from its source", func(t *testing.T) {
		a, err := New(Human, WithMoveSource(&fixedSource{moves: []int{44}}))
		require.NoError(t, err)

		_, _, err = a.FindMove(game.InitialBoard(), game.Black)

		var illegal *game.IllegalMoveError
		require.True(t, errors.As(err, &illegal), "Got %v", err)
		require.Equal(t, 44, illegal.Move.Cell)
	})
}

func TestSearchAgents(t *testing.T) {
	t.Run("both searchers take the wipe-out", func(t *testing.T) {
		for _, strategy := range []Strategy{Minimax, AlphaBeta} {
			move, err := ChooseMove(stuck(t), game.Black, strategy)
			require.NoError(t, err)
			require.Equal(t, 18, move, "%s should flip the whole row", strategy)
		}
	})

	t.Run("search options reach the searcher", func(t *testing.T) {
		a, err := New(AlphaBeta, WithMetrics(), WithSearchOptions(searcher.WithDepth(2)))
		require.NoError(t, err)

		move, metric, err := a.FindMove(game.InitialBoard(), game.Black)

		require.NoError(t, err)
		require.True(t, game.InitialBoard().LegalMoves(game.Black).Has(move))
		require.Equal(t, searcher.AlphaBetaName, metric.Strategy)
		require.Equal(t, 2, metric.Depth)
		require.Positive(t, metric.Nodes)
	})
}

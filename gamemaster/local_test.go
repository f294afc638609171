package gamemaster

import (
	"strings"
	"testing"

	"othello/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, firstRow string) *LocalEngine {
	t.Helper()
	b, err := game.NewBoard(firstRow + strings.Repeat(".", 56))
	require.NoError(t, err)
	return NewLocalEngine(b)
}

func drain(getUpdate UpdateGetter) []Update {
	var updates []Update
	for {
		u, ok := getUpdate()
		if !ok {
			return updates
		}
		updates = append(updates, u)
	}
}

func TestLocalEngineInit(t *testing.T) {
	t.Run("opening", func(t *testing.T) {
		e := NewLocalEngine(game.InitialBoard())

		board, getUpdate := e.Init()

		require.Equal(t, game.InitialBoard(), board)
		require.Equal(t, game.Black, e.ToMove())
		require.Empty(t, drain(getUpdate), "No updates before the first move")
		require.False(t, e.State().Over)
	})

	t.Run("black passes when it cannot open", func(t *testing.T) {
		e := newEngine(t, "OXXXXXX.")

		_, getUpdate := e.Init()

		require.Equal(t, game.White, e.ToMove())
		updates := drain(getUpdate)
		require.Len(t, updates, 1)
		require.Equal(t, game.Move{Cell: game.NoMove, Side: game.Black}, updates[0].Move)
	})

	t.Run("init restarts a finished game", func(t *testing.T) {
		e := newEngine(t, "XOOOOOO.")
		e.Init()
		require.NoError(t, e.Play(18))
		require.True(t, e.State().Over)

		board, _ := e.Init()

		require.False(t, e.State().Over)
		require.Zero(t, e.State().Moves)
		require.Equal(t, game.BlackDisc, board.At(11))
		require.Equal(t, game.WhiteDisc, board.At(12))
	})
}

func TestLocalEnginePlay(t *testing.T) {
	t.Run("valid move", func(t *testing.T) {
		e := NewLocalEngine(game.InitialBoard())
		_, getUpdate := e.Init()

		require.NoError(t, e.Play(34))

		u, ok := getUpdate()
		require.True(t, ok, "Expected an update after playing a move")
		require.Equal(t, game.Move{Cell: 34, Side: game.Black}, u.Move)
		require.Equal(t, game.BlackDisc, u.Board.At(44), "The flipped disc should be in the update")
		require.Equal(t, u.Board.Hash(), u.Hash)
		require.Equal(t, game.White, e.ToMove())
		require.Equal(t, 1, e.State().Moves)
	})

	t.Run("illegal move", func(t *testing.T) {
		e := NewLocalEngine(game.InitialBoard())
		_, getUpdate := e.Init()

		err := e.Play(35)

		var illegal *game.IllegalMoveError
		require.True(t, errors.As(err, &illegal), "Got %v", err)
		require.Equal(t, game.Black, e.ToMove(), "A rejected move keeps the turn")
		require.Empty(t, drain(getUpdate))
	})

	t.Run("opponent without moves is passed", func(t *testing.T) {
		e := newEngine(t, "XO.XO...")
		_, getUpdate := e.Init()

		require.NoError(t, e.Play(13))

		require.Equal(t, game.Black, e.ToMove(), "White is stuck so Black moves again")
		updates := drain(getUpdate)
		require.Len(t, updates, 2)
		require.Equal(t, game.Move{Cell: 13, Side: game.Black}, updates[0].Move)
		require.Equal(t, game.Move{Cell: game.NoMove, Side: game.White}, updates[1].Move)

		require.NoError(t, e.Play(16))
		require.True(t, e.State().Over)
	})

	t.Run("game over closes the stream", func(t *testing.T) {
		e := newEngine(t, "XOOOOOO.")
		_, getUpdate := e.Init()

		require.NoError(t, e.Play(18))

		updates := drain(getUpdate)
		require.Len(t, updates, 1, "The final move is still delivered")
		require.Equal(t, 8, updates[0].Board.Discs(game.Black))
		_, ok := getUpdate()
		require.False(t, ok)

		err := e.Play(11)
		require.True(t, errors.Is(err, ErrGameOver))
		require.EqualError(t, err, "game is over - no moves allowed")
	})
}

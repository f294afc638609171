package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPositionalScore(t *testing.T) {
	b := mustBoard(t, layout(
		"X.X.....",
		"........",
		"........",
		"........",
		"....O...",
	))

	require.Equal(t, 112, PositionalScore(b, Black), "Two discs, one corner and one edge")
	require.Equal(t, 1, PositionalScore(b, White))
	require.Equal(t, 111, EvaluateTwoPhase(b, Black))
	require.Equal(t, -111, EvaluateTwoPhase(b, White))
}

func TestEvaluateTwoPhase(t *testing.T) {
	t.Run("opening counts mobility", func(t *testing.T) {
		b := InitialBoard()

		require.True(t, b.IsOpening())
		require.Equal(t, 2+4*MobilityWeight, PositionalScore(b, Black))
		require.Zero(t, EvaluateTwoPhase(b, Black), "The opening is symmetric")
	})

	t.Run("endgame collapses to the disc difference", func(t *testing.T) {
		b := mustBoard(t, strings.Repeat("X", 30)+strings.Repeat("O", 28)+strings.Repeat(".", 6))

		require.Equal(t, EndgameThreshold, b.Occupancy())
		require.False(t, b.IsOpening())
		require.Equal(t, 2, EvaluateTwoPhase(b, Black))
		require.Equal(t, -2, EvaluateTwoPhase(b, White))
	})

	t.Run("one below the threshold is still the opening", func(t *testing.T) {
		b := mustBoard(t, strings.Repeat("X", 29)+strings.Repeat("O", 28)+strings.Repeat(".", 7))

		require.Equal(t, EndgameThreshold-1, b.Occupancy())
		require.True(t, b.IsOpening())
		require.Equal(t, PositionalScore(b, Black)-PositionalScore(b, White), EvaluateTwoPhase(b, Black))
	})

	t.Run("zero sum on random positions", func(t *testing.T) {
		for _, b := range randomPositions(5, 10) {
			require.Equal(t, -EvaluateTwoPhase(b, White), EvaluateTwoPhase(b, Black))
			require.Equal(t, b.Difference(Black), EvaluateDiscs(b, Black))
		}
	})
}

package agent

import (
	"othello/experiments/metrics"
	"othello/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

func newRandomAgent(seed uint64) *randomAgent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

// FindMove picks uniformly among the legal moves in ascending cell order.
func (a *randomAgent) FindMove(b game.Board, side game.Side) (int, metrics.SearchMetric, error) {
	moves := b.LegalMoves(side).Cells()
	if len(moves) == 0 {
		return game.NoMove, metrics.SearchMetric{}, nil
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{Strategy: string(Random)}, nil
}

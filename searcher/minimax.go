package searcher

import (
	"math"

	"othello/experiments/metrics"
	"othello/game"
)

// Minimax walks the full game tree to a fixed depth.
type Minimax struct {
	config
	root game.Side
}

func NewMinimax(options ...Option) *Minimax {
	return &Minimax{config: newConfig(MinimaxDepth, options)}
}

func (m *Minimax) Search(b game.Board, side game.Side) (Result, metrics.SearchMetric) {
	m.metrics.Start(MinimaxName, m.depth)
	m.root = side

	var result Result
	if b.LegalMoves(side).Len() == 0 {
		result = Result{Value: m.evaluate(b, side), Move: game.NoMove}
	} else {
		result = m.value(b, side, m.depth, game.NoMove)
	}
	return result, m.metrics.Complete()
}

func (m *Minimax) value(b game.Board, toMove game.Side, depth, lastMove int) Result {
	m.metrics.AddNode()
	if depth == 0 {
		return m.leaf(b, m.root, lastMove)
	}

	moves := b.LegalMoves(toMove)
	if moves.Len() == 0 {
		if b.LegalMoves(toMove.Opponent()).Len() == 0 {
			return m.leaf(b, m.root, lastMove)
		}
		// Pass without spending depth
		return m.value(b, toMove.Opponent(), depth, lastMove)
	}

	maximizing := toMove == m.root
	best := Result{Value: math.MaxInt, Move: game.NoMove}
	if maximizing {
		best.Value = math.MinInt
	}
	for _, cell := range moves.Cells() {
		child := m.value(play(b, cell, toMove), toMove.Opponent(), depth-1, cell)
		if (maximizing && child.Value > best.Value) || (!maximizing && child.Value < best.Value) {
			best = Result{Value: child.Value, Move: cell}
		}
	}
	return best
}

package searcher

import (
	"math"

	"othello/experiments/metrics"
	"othello/game"
)

// AlphaBeta is minimax with branch pruning. It returns the same value and
// root move as Minimax at equal depth while visiting fewer nodes.
type AlphaBeta struct {
	config
	root game.Side
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	return &AlphaBeta{config: newConfig(AlphaBetaDepth, options)}
}

func (a *AlphaBeta) Search(b game.Board, side game.Side) (Result, metrics.SearchMetric) {
	a.metrics.Start(AlphaBetaName, a.depth)
	a.root = side

	var result Result
	if b.LegalMoves(side).Len() == 0 {
		result = Result{Value: a.evaluate(b, side), Move: game.NoMove}
	} else {
		result = a.value(b, side, a.depth, game.NoMove, math.MinInt, math.MaxInt)
	}
	return result, a.metrics.Complete()
}

func (a *AlphaBeta) value(b game.Board, toMove game.Side, depth, lastMove, alpha, beta int) Result {
	a.metrics.AddNode()
	if depth == 0 {
		return a.leaf(b, a.root, lastMove)
	}

	moves := b.LegalMoves(toMove)
	if moves.Len() == 0 {
		if b.LegalMoves(toMove.Opponent()).Len() == 0 {
			return a.leaf(b, a.root, lastMove)
		}
		return a.value(b, toMove.Opponent(), depth, lastMove, alpha, beta)
	}

	if toMove == a.root {
		best := Result{Value: math.MinInt, Move: game.NoMove}
		for _, cell := range moves.Cells() {
			child := a.value(play(b, cell, toMove), toMove.Opponent(), depth-1, cell, alpha, beta)
			if child.Value > best.Value {
				best = Result{Value: child.Value, Move: cell}
			}
			if best.Value > beta {
				a.metrics.AddCutoff()
				return best
			}
			if !a.fixedWindow {
				alpha = max(alpha, best.Value)
			}
		}
		return best
	}

	best := Result{Value: math.MaxInt, Move: game.NoMove}
	for _, cell := range moves.Cells() {
		child := a.value(play(b, cell, toMove), toMove.Opponent(), depth-1, cell, alpha, beta)
		if child.Value < best.Value {
			best = Result{Value: child.Value, Move: cell}
		}
		if best.Value < alpha {
			a.metrics.AddCutoff()
			return best
		}
		if !a.fixedWindow {
			beta = min(beta, best.Value)
		}
	}
	return best
}

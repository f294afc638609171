package engine

import "othello/experiments/metrics"

type Engine interface {
	// Run plays the game till it is over or the turn cap is reached
	Run() (Outcome, metrics.GameMetric, []metrics.MoveMetric, error)
}

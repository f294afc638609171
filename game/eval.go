package game

// Heuristic weights of the opening/midgame evaluation.
const (
	CornerBonus      = 100
	EdgeBonus        = 10
	MobilityWeight   = 10
	EndgameThreshold = 58 // occupied cells from which only the disc difference counts
)

var (
	Corners   = [4]int{11, 18, 81, 88}
	EdgeCells = [12]int{13, 14, 15, 16, 31, 41, 51, 61, 38, 48, 58, 68}

	cornerSet = cellSetOf(Corners[:]...)
	edgeSet   = cellSetOf(EdgeCells[:]...)
)

func cellSetOf(cells ...int) CellSet {
	var s CellSet
	for _, c := range cells {
		s.Add(c)
	}
	return s
}

// Occupancy returns how many cells hold a disc of either side.
func (b Board) Occupancy() int { return b.Discs(Black) + b.Discs(White) }

// IsOpening reports whether the positional heuristic still applies.
func (b Board) IsOpening() bool { return b.Occupancy() < EndgameThreshold }

// PositionalScore tallies one side's discs, corner and edge bonuses and mobility.
func PositionalScore(b Board, side Side) int {
	score := 0
	for _, cell := range b.occupied[side].Cells() {
		score++
		if cornerSet.Has(cell) {
			score += CornerBonus
		}
		if edgeSet.Has(cell) {
			score += EdgeBonus
		}
	}
	return score + MobilityWeight*b.LegalMoves(side).Len()
}

// EvaluateTwoPhase uses the positional heuristic while the board is in its
// opening or midgame and the exact disc difference afterwards.
func EvaluateTwoPhase(b Board, side Side) int {
	if !b.IsOpening() {
		return b.Difference(side)
	}
	return PositionalScore(b, side) - PositionalScore(b, side.Opponent())
}

// EvaluateDiscs scores a board by disc difference alone.
func EvaluateDiscs(b Board, side Side) int { return b.Difference(side) }

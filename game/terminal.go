package game

// IsTerminal reports whether the game is over: neither side can move, or one
// side has no discs left.
func (b Board) IsTerminal() bool {
	if b.Discs(Black) == 0 || b.Discs(White) == 0 {
		return true
	}
	return b.LegalMoves(Black).Len() == 0 && b.LegalMoves(White).Len() == 0
}

// Difference returns side's disc count minus the opponent's.
func (b Board) Difference(side Side) int {
	return b.Discs(side) - b.Discs(side.Opponent())
}

// Count returns how many grid cells hold c, border included.
func (b Board) Count(c Cell) int {
	n := 0
	for _, cell := range b.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Winner returns the side with more discs; ok is false on a tie.
func (b Board) Winner() (winner Side, ok bool) {
	switch d := b.Difference(Black); {
	case d > 0:
		return Black, true
	case d < 0:
		return White, true
	}
	return Black, false
}

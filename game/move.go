package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// Move is a disc placement by one side.
type Move struct {
	Cell int
	Side Side
}

func (m Move) String() string { return fmt.Sprintf("%s@%d", m.Side.Symbol(), m.Cell) }

// IllegalMoveError is returned by Play when the destination is not one of
// the mover's legal moves.
type IllegalMoveError struct {
	Move
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %v", e.Move)
}

// LegalMoves returns every empty cell where side can place a disc. An empty
// set means side must pass.
func (b Board) LegalMoves(side Side) CellSet {
	var moves CellSet
	own := side.Cell()
	for _, origin := range b.occupied[side].Cells() {
		for _, d := range directions {
			next := origin + d
			if c := b.cells[next]; c == Sentinel || c == own || c == Empty {
				continue
			}
			for c := b.cells[next]; c != Sentinel && c != own && c != Empty; c = b.cells[next] {
				next += d
			}
			if b.cells[next] == Empty {
				moves.Add(next)
			}
		}
	}
	return moves
}

// Play places side's disc on cell and flips every captured run, returning the
// resulting board. The receiver is left untouched.
func (b Board) Play(cell int, side Side) (Board, error) {
	if !IsPlayable(cell) || !b.LegalMoves(side).Has(cell) {
		return Board{}, errors.WithStack(&IllegalMoveError{Move{Cell: cell, Side: side}})
	}

	next := b
	own := side.Cell()
	opp := side.Opponent().Cell()
	next.cells[cell] = own
	for _, d := range directions {
		end := cell + d
		for b.cells[end] == opp {
			end += d
		}
		// rays are read from b, so the order of directions does not matter
		if b.cells[end] != own {
			continue
		}
		for i := cell + d; i != end; i += d {
			next.cells[i] = own
		}
	}
	next.refresh()
	return next, nil
}

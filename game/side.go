package game

import (
	"strings"

	"github.com/pkg/errors"
)

// Cell is the content of one grid position. The values double as the
// symbols used by board layouts.
type Cell byte

const (
	Empty     Cell = '.'
	BlackDisc Cell = 'X'
	WhiteDisc Cell = 'O'
	Sentinel  Cell = 'W'
)

// Side identifies one of the two players by disc colour.
type Side int

const (
	Black Side = iota // moves first, plays X
	White             // plays O
)

// Sides lists both sides in turn order.
var Sides = [2]Side{Black, White}

func (s Side) Opponent() Side {
	if s == Black {
		return White
	}
	return Black
}

// Cell returns the disc this side places on the board.
func (s Side) Cell() Cell {
	if s == Black {
		return BlackDisc
	}
	return WhiteDisc
}

// Symbol returns the layout symbol of the side, "X" or "O".
func (s Side) Symbol() string { return string(s.Cell()) }

func (s Side) String() string {
	switch s {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "Unknown"
}

// ParseSide accepts a layout symbol or a colour name, case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "black":
		return Black, nil
	case "o", "white":
		return White, nil
	}
	return Black, errors.Errorf("unknown side %q", s)
}

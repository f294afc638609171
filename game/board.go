package game

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/pkg/errors"
)

// InitialLayout is the standard opening position in the 64-cell layout.
const InitialLayout = "...........................OX......XO..........................."

// Board is the full game position. The occupancy caches are derived from
// cells and are only ever rebuilt by NewBoard and Play, so no caller can
// observe them out of date.
type Board struct {
	cells    [Size]Cell
	occupied [2]CellSet
}

// NewBoard builds a board from either a 64-character row-major layout of the
// playing area or a 100-character layout that already includes the border.
func NewBoard(layout string) (Board, error) {
	var b Board
	switch len(layout) {
	case Playable:
		for i := range b.cells {
			b.cells[i] = Sentinel
		}
		for i := 0; i < Playable; i++ {
			c := Cell(layout[i])
			if !isDiscOrEmpty(c) {
				return Board{}, layoutErrorf(layout, "invalid symbol %q at %d", c, i)
			}
			b.cells[Index(i/8, i%8)] = c
		}
	case Size:
		for i := 0; i < Size; i++ {
			c := Cell(layout[i])
			if IsPlayable(i) && !isDiscOrEmpty(c) {
				return Board{}, layoutErrorf(layout, "invalid symbol %q at %d", c, i)
			}
			if !IsPlayable(i) && c != Sentinel {
				return Board{}, layoutErrorf(layout, "border cell %d is %q, want %q", i, c, Sentinel)
			}
			b.cells[i] = c
		}
	default:
		return Board{}, layoutErrorf(layout, "length %d, want %d or %d", len(layout), Playable, Size)
	}
	b.refresh()
	return b, nil
}

// InitialBoard returns the standard opening position.
func InitialBoard() Board {
	b, err := NewBoard(InitialLayout)
	if err != nil {
		panic(err)
	}
	return b
}

func isDiscOrEmpty(c Cell) bool {
	return c == Empty || c == BlackDisc || c == WhiteDisc
}

// Index converts a zero-based row and column of the playing area into a grid index.
func Index(row, col int) int { return (row+1)*Width + col + 1 }

// RowCol is the inverse of Index.
func RowCol(i int) (row, col int) { return i/Width - 1, i%Width - 1 }

// IsPlayable reports whether i addresses a cell of the 8x8 playing area.
func IsPlayable(i int) bool {
	if i < 0 || i >= Size {
		return false
	}
	row, col := RowCol(i)
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

// At returns the content of grid index i; indices outside the grid read as Sentinel.
func (b Board) At(i int) Cell {
	if i < 0 || i >= Size {
		return Sentinel
	}
	return b.cells[i]
}

// Occupied returns the set of cells holding side's discs.
func (b Board) Occupied(side Side) CellSet { return b.occupied[side] }

// Discs returns how many discs side has on the board.
func (b Board) Discs(side Side) int { return b.occupied[side].Len() }

func (b *Board) refresh() {
	b.occupied = [2]CellSet{}
	for i, c := range b.cells {
		switch c {
		case BlackDisc:
			b.occupied[Black].Add(i)
		case WhiteDisc:
			b.occupied[White].Add(i)
		}
	}
}

// Layout returns the 64-character row-major form of the playing area.
func (b Board) Layout() string {
	var sb strings.Builder
	sb.Grow(Playable)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sb.WriteByte(byte(b.cells[Index(row, col)]))
		}
	}
	return sb.String()
}

func (b Board) Hash() StateHash {
	var raw [Size]byte
	for i, c := range b.cells {
		raw[i] = byte(c)
	}
	h := fnv.New64a()
	h.Write(raw[:])
	return StateHash(h.Sum64())
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(byte(b.cells[Index(row, col)]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// LayoutError reports a layout string that cannot describe a board.
type LayoutError struct {
	Layout string
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("invalid layout: %s", e.Reason)
}

func layoutErrorf(layout, format string, args ...any) error {
	return errors.WithStack(&LayoutError{Layout: layout, Reason: fmt.Sprintf(format, args...)})
}

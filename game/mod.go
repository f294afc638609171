package game

// Board indices address a 10x10 grid: the 8x8 playing area surrounded by a
// one-cell border of Sentinel cells, so that a ray scan always stops on the
// border before leaving the array.
const (
	Width    = 10
	Size     = Width * Width
	Playable = 64
)

// NoMove is returned instead of a cell index when a side has to pass.
const NoMove = -1

// directions are the eight neighbour offsets on the bordered grid.
var directions = [8]int{-11, -10, -9, -1, 1, 9, 10, 11}

type StateHash uint64

// Evaluate scores a board from the perspective of side; larger is better for side.
type Evaluate func(b Board, side Side) int

package game

import "math/bits"

// CellSet is a set of grid indices backed by a 128-bit mask. It is a value
// type, so copying a Board copies its sets as well.
type CellSet [2]uint64

func (s *CellSet) Add(i int) { s[i>>6] |= 1 << uint(i&63) }

func (s CellSet) Has(i int) bool {
	if i < 0 || i >= Size {
		return false
	}
	return s[i>>6]&(1<<uint(i&63)) != 0
}

func (s CellSet) Len() int { return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1]) }

// Cells returns the members in ascending order.
func (s CellSet) Cells() []int {
	cells := make([]int, 0, s.Len())
	for w, word := range s {
		for word != 0 {
			i := bits.TrailingZeros64(word)
			cells = append(cells, w*64+i)
			word &= word - 1
		}
	}
	return cells
}

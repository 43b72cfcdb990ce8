package types

import "math"

// Page selects a window of a list. Number is 1-indexed.
type Page struct {
	Number int
	Size   int
}

// Offset returns the number of rows before the page. It saturates at
// math.MaxInt instead of overflowing, so a far-off page reads as empty.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// Package dirty tracks which screen cells changed since the last flush.
package dirty

import (
	"cmp"
	"slices"
)

// Coord is a (row, col) screen coordinate.
type Coord struct {
	Row int
	Col int
}

// Compare orders coordinates row-major. It returns -1, 0 or +1 like
// cmp.Compare.
func (c Coord) Compare(other Coord) int {
	if n := cmp.Compare(c.Row, other.Row); n != 0 {
		return n
	}
	return cmp.Compare(c.Col, other.Col)
}

// Tracker is a set of dirty cell coordinates for a fixed-size screen.
// Each coordinate is held at most once regardless of how often it is marked.
// Tracker is not safe for concurrent use; it is owned by the render loop.
type Tracker struct {
	width, height int

	// marked mirrors the screen so membership checks are O(1).
	marked [][]bool

	// coords holds members in first-marked order.
	coords []Coord
}

// NewTracker creates an empty tracker for a width x height screen.
// Negative dimensions are treated as zero.
func NewTracker(width, height int) *Tracker {
	t := &Tracker{}
	t.SetScreenSize(width, height)
	return t
}

// SetScreenSize reallocates the tracker for new dimensions and
// discards every pending coordinate.
func (t *Tracker) SetScreenSize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)

	t.width = width
	t.height = height
	t.marked = make([][]bool, height)
	for y := range t.marked {
		t.marked[y] = make([]bool, width)
	}
	t.coords = make([]Coord, 0, 64)
}

// Mark adds a coordinate. It returns false when the coordinate is out of
// range or already present.
func (t *Tracker) Mark(row, col int) bool {
	if !t.inBounds(row, col) || t.marked[row][col] {
		return false
	}
	t.marked[row][col] = true
	t.coords = append(t.coords, Coord{Row: row, Col: col})
	return true
}

// Len returns the number of dirty coordinates.
func (t *Tracker) Len() int {
	return len(t.coords)
}

// Drain returns every dirty coordinate in row-major order and empties the set.
func (t *Tracker) Drain() []Coord {
	out := make([]Coord, len(t.coords))
	copy(out, t.coords)
	slices.SortFunc(out, Coord.Compare)
	t.Clear()
	return out
}

// Clear empties the set without reallocating.
func (t *Tracker) Clear() {
	for _, c := range t.coords {
		t.marked[c.Row][c.Col] = false
	}
	t.coords = t.coords[:0]
}

func (t *Tracker) inBounds(row, col int) bool {
	return row >= 0 && row < t.height && col >= 0 && col < t.width
}

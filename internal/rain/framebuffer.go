package rain

import (
	"github.com/dshills/glyphfall/internal/renderer/dirty"
)

// FrameBuffer is the authoritative grid of rendered cells together with
// the set of coordinates that changed since the last flush.
//
// It keeps two grids: cells is what the next frame should show and front
// is what was last handed to the display. A coordinate that is touched
// and then restored before the flush is dropped by DirtyCoordinates.
type FrameBuffer struct {
	rows, cols int
	background Cell

	cells [][]Cell
	front [][]Cell
	dirty *dirty.Tracker

	fadeSpeed   float64
	bottomBoost float64
}

// NewFrameBuffer creates a background-filled buffer of the given size.
func NewFrameBuffer(rows, cols int, p Params) *FrameBuffer {
	fb := &FrameBuffer{
		background:  BackgroundCell(p.Background),
		dirty:       dirty.NewTracker(0, 0),
		fadeSpeed:   p.FadeSpeed,
		bottomBoost: p.BottomBoost,
	}
	fb.Resize(rows, cols)
	return fb
}

// Rows returns the number of rows.
func (fb *FrameBuffer) Rows() int { return fb.rows }

// Cols returns the number of columns.
func (fb *FrameBuffer) Cols() int { return fb.cols }

// Background returns the unlit cell value.
func (fb *FrameBuffer) Background() Cell { return fb.background }

// Get returns the cell at (row, col), or the background cell when the
// coordinate is outside the grid.
func (fb *FrameBuffer) Get(row, col int) Cell {
	if !fb.inBounds(row, col) {
		return fb.background
	}
	return fb.cells[row][col]
}

// Set stores a cell and marks the coordinate dirty if the stored value
// changed. It reports whether anything changed. Coordinates outside the
// grid are ignored.
func (fb *FrameBuffer) Set(row, col int, c Cell) bool {
	if !fb.inBounds(row, col) {
		return false
	}
	if fb.cells[row][col].Equals(c) {
		return false
	}
	fb.cells[row][col] = c
	fb.dirty.Mark(row, col)
	return true
}

// Erase resets a lit cell to background. Unlit cells are left alone.
func (fb *FrameBuffer) Erase(row, col int) bool {
	if fb.Get(row, col).IsBackground() {
		return false
	}
	return fb.Set(row, col, fb.background)
}

// Decay lowers the fade level of every lit cell by one step:
//
//	step = fadeSpeed × (1 + bottomBoost × row/rows) × pulse
//	fade = max(fade − step × intensity, 0)
//
// A cell that reaches zero reverts to background.
func (fb *FrameBuffer) Decay(pulse, intensity float64) {
	if fb.rows == 0 {
		return
	}
	for row := range fb.cells {
		step := fb.fadeSpeed * (1 + fb.bottomBoost*float64(row)/float64(fb.rows)) * pulse * intensity
		if step <= 0 {
			continue
		}
		for col, c := range fb.cells[row] {
			if c.IsBackground() {
				continue
			}
			level := c.Fade - step
			if level <= 0 {
				fb.Set(row, col, fb.background)
				continue
			}
			c.Fade = level
			fb.Set(row, col, c)
		}
	}
}

// DirtyCoordinates drains the dirty set in row-major order. Coordinates
// whose value matches what was last flushed are left out, and the
// returned coordinates are recorded as flushed.
func (fb *FrameBuffer) DirtyCoordinates() []dirty.Coord {
	coords := fb.dirty.Drain()
	out := coords[:0]
	for _, c := range coords {
		cur := fb.cells[c.Row][c.Col]
		if fb.front[c.Row][c.Col].Equals(cur) {
			continue
		}
		fb.front[c.Row][c.Col] = cur
		out = append(out, c)
	}
	return out
}

// Pending returns the number of coordinates currently marked dirty.
func (fb *FrameBuffer) Pending() int {
	return fb.dirty.Len()
}

// Resize reallocates both grids at the new size filled with background
// and discards the dirty set. Negative dimensions are treated as zero.
func (fb *FrameBuffer) Resize(rows, cols int) {
	fb.rows = max(rows, 0)
	fb.cols = max(cols, 0)
	fb.cells = fb.newGrid()
	fb.front = fb.newGrid()
	fb.dirty.SetScreenSize(fb.cols, fb.rows)
}

// Lit returns the number of non-background cells.
func (fb *FrameBuffer) Lit() int {
	n := 0
	for _, line := range fb.cells {
		for _, c := range line {
			if !c.IsBackground() {
				n++
			}
		}
	}
	return n
}

func (fb *FrameBuffer) newGrid() [][]Cell {
	grid := make([][]Cell, fb.rows)
	for y := range grid {
		grid[y] = make([]Cell, fb.cols)
		for x := range grid[y] {
			grid[y][x] = fb.background
		}
	}
	return grid
}

func (fb *FrameBuffer) inBounds(row, col int) bool {
	return row >= 0 && row < fb.rows && col >= 0 && col < fb.cols
}

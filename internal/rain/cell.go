package rain

import "github.com/dshills/glyphfall/internal/renderer"

// Cell is one frame buffer cell.
// A cell is lit exactly when Fade > 0; an unlit cell holds the
// background glyph with the default style and no attributes.
type Cell struct {
	Rune  rune
	Style renderer.StyleToken
	Attrs renderer.Attribute
	Fade  float64
}

// BackgroundCell returns the unlit cell for a background glyph.
func BackgroundCell(glyph rune) Cell {
	return Cell{Rune: glyph, Style: renderer.StyleDefault}
}

// IsBackground reports whether the cell is unlit.
func (c Cell) IsBackground() bool {
	return c.Fade <= 0
}

// Equals compares the displayable content of two cells and their fade.
func (c Cell) Equals(other Cell) bool {
	return c == other
}


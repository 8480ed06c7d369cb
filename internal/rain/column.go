package rain

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/dshills/glyphfall/internal/renderer"
)

// Column is one falling trail. It moves down a single screen column,
// writes its head and tail into a FrameBuffer and restarts at the top
// once it has fully left the screen or a random reset fires.
//
// A Column is either falling or paused; a reset is an instantaneous
// transition that may leave it paused for Params.PauseDuration.
type Column struct {
	extent     int
	position   float64
	speed      float64
	tailLength int
	tail       []rune
	symbols    []rune

	paused     bool
	pauseStart time.Time

	params   Params
	gradient *Gradient
	rng      *rand.Rand
}

// NewColumn creates a column for a screen extent rows tall with a random
// start position, speed, tail length and glyphs. Start positions are
// spread over [-extent, extent) so the first frames are already busy.
// With a PauseDuration the column starts paused at now.
func NewColumn(extent int, p Params, g *Gradient, rng *rand.Rand, now time.Time) *Column {
	c := &Column{
		extent:   extent,
		symbols:  p.Symbols(),
		params:   p,
		gradient: g,
		rng:      rng,
	}
	c.pause(now)
	c.speed = p.FallSpeed * (1 + p.SpeedVariation*(2*rng.Float64()-1))
	c.tailLength = c.randomTailLength()
	c.tail = c.randomTail(c.tailLength)
	if extent > 0 {
		c.position = float64(extent) * (2*rng.Float64() - 1)
	}
	return c
}

// Position returns the fractional head position.
func (c *Column) Position() float64 { return c.position }

// HeadRow returns the row the head currently occupies. It may be negative
// or beyond the screen.
func (c *Column) HeadRow() int { return int(math.Floor(c.position)) }

// Speed returns rows advanced per tick at intensity 1.
func (c *Column) Speed() float64 { return c.speed }

// TailLength returns the number of cells in the trail, head included.
func (c *Column) TailLength() int { return c.tailLength }

// Paused reports whether the column is waiting after a reset.
func (c *Column) Paused() bool { return c.paused }

// Advance moves the column one tick and writes it into fb at screen
// column x. A paused column only checks whether its pause has elapsed;
// it starts falling on the following tick.
func (c *Column) Advance(fb *FrameBuffer, x int, now time.Time) {
	if c.paused {
		if now.Sub(c.pauseStart) >= c.params.PauseDuration {
			c.paused = false
		}
		return
	}

	oldHead := c.HeadRow()
	c.position += c.speed * c.params.Intensity
	newHead := c.HeadRow()

	if newHead > c.extent+c.tailLength || c.rng.Float64() < c.params.ResetProbability {
		c.clearTrail(fb, x, oldHead)
		c.reset(now)
		return
	}

	// The trail spans head-tailLength+1..head, so rows up to
	// newHead-tailLength have fallen off its back.
	for row := oldHead - c.tailLength; row <= newHead-c.tailLength; row++ {
		fb.Erase(row, x)
	}

	c.drift()
	c.write(fb, x)
}

func (c *Column) write(fb *FrameBuffer, x int) {
	head := c.HeadRow()
	for offset := 0; offset < c.tailLength; offset++ {
		row := head - offset
		if row < 0 || row >= c.extent {
			continue
		}
		fb.Set(row, x, c.cellAt(offset))
	}
}

// cellAt computes the cell drawn at a distance offset behind the head.
func (c *Column) cellAt(offset int) Cell {
	ratio := float64(offset) / float64(c.tailLength)
	cell := Cell{
		Rune: c.tail[offset],
		Fade: c.params.FadeSteps * (1 - math.Pow(ratio, c.params.TailFadeCurve)),
	}

	if offset == 0 {
		if c.params.HeadGlyph != 0 {
			cell.Rune = c.params.HeadGlyph
		}
		cell.Style = c.gradient.Head()
		cell.Attrs = renderer.AttrBold
		return cell
	}

	cell.Style = c.gradient.StyleForOffsetRatio(math.Min(float64(offset)/float64(c.tailLength-1), 1))
	if c.params.Brightness < DimBrightness && offset > c.tailLength/2 {
		cell.Attrs = renderer.AttrDim
	}
	return cell
}

// clearTrail erases every lit cell the trail covered with its head at head.
func (c *Column) clearTrail(fb *FrameBuffer, x, head int) {
	for row := head - c.tailLength; row <= head; row++ {
		fb.Erase(row, x)
	}
}

func (c *Column) reset(now time.Time) {
	c.position = 0
	c.tailLength = c.randomTailLength()
	c.tail = c.randomTail(c.tailLength)
	c.pause(now)
}

// pause holds the column for PauseDuration starting at now.
func (c *Column) pause(now time.Time) {
	if c.params.PauseDuration > 0 {
		c.paused = true
		c.pauseStart = now
	}
}

// drift redraws each trail glyph with CharChangeProbability.
func (c *Column) drift() {
	if c.params.CharChangeProbability <= 0 {
		return
	}
	for i := range c.tail {
		if c.rng.Float64() < c.params.CharChangeProbability {
			c.tail[i] = c.randomGlyph()
		}
	}
}

func (c *Column) randomTailLength() int {
	lo, hi := c.params.TailMin, c.params.TailMax
	if hi <= lo {
		return lo
	}
	return lo + c.rng.IntN(hi-lo+1)
}

func (c *Column) randomTail(n int) []rune {
	tail := make([]rune, n)
	for i := range tail {
		tail[i] = c.randomGlyph()
	}
	return tail
}

func (c *Column) randomGlyph() rune {
	return c.symbols[c.rng.IntN(len(c.symbols))]
}

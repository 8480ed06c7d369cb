package rain

import (
	"errors"
	"fmt"
	"math"

	"github.com/dshills/glyphfall/internal/renderer"
)

// ErrEmptyTail is returned when a gradient has no tail styles.
var ErrEmptyTail = errors.New("gradient needs at least one tail style")

// StyleRegistrar binds colors to style slots on a display surface.
type StyleRegistrar interface {
	RegisterStyle(index int, fg renderer.Color) (renderer.StyleToken, error)
}

// Gradient is the ordered style table used to draw trails: a head style
// followed by tail styles from brightest to dimmest.
type Gradient struct {
	head renderer.StyleToken
	tail []renderer.StyleToken
}

// NewGradient builds a gradient from already registered style tokens.
func NewGradient(head renderer.StyleToken, tail []renderer.StyleToken) (*Gradient, error) {
	if len(tail) == 0 {
		return nil, ErrEmptyTail
	}
	t := make([]renderer.StyleToken, len(tail))
	copy(t, tail)
	return &Gradient{head: head, tail: t}, nil
}

// RegisterGradient registers the head color at style index 1 and the tail
// colors at indices 2 and up, then returns the resulting gradient.
func RegisterGradient(reg StyleRegistrar, head renderer.Color, tail []renderer.Color) (*Gradient, error) {
	if len(tail) == 0 {
		return nil, ErrEmptyTail
	}

	headToken, err := reg.RegisterStyle(1, head)
	if err != nil {
		return nil, fmt.Errorf("register head style: %w", err)
	}

	tokens := make([]renderer.StyleToken, len(tail))
	for i, c := range tail {
		tok, err := reg.RegisterStyle(i+2, c)
		if err != nil {
			return nil, fmt.Errorf("register tail style %d: %w", i, err)
		}
		tokens[i] = tok
	}

	return &Gradient{head: headToken, tail: tokens}, nil
}

// Head returns the style used for a trail's leading glyph.
func (g *Gradient) Head() renderer.StyleToken {
	return g.head
}

// Len returns the size of the whole table, head included.
func (g *Gradient) Len() int {
	return len(g.tail) + 1
}

// TailLen returns the number of tail styles.
func (g *Gradient) TailLen() int {
	return len(g.tail)
}

// At returns table entry i, where 0 is the head and 1..TailLen are the
// tail styles. Out of range indices are clamped.
func (g *Gradient) At(i int) renderer.StyleToken {
	if i <= 0 {
		return g.head
	}
	return g.tail[min(i, len(g.tail))-1]
}

// StyleForOffsetRatio maps a position along the tail, 0 just behind the
// head and 1 at the far end, onto a tail style. The ratio is clamped to
// [0, 1] and the result is tail[floor(ratio × (n−1))].
func (g *Gradient) StyleForOffsetRatio(ratio float64) renderer.StyleToken {
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	idx := int(math.Floor(ratio * float64(len(g.tail)-1)))
	return g.tail[idx]
}

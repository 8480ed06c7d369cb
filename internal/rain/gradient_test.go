package rain

import (
	"errors"
	"math"
	"testing"

	"github.com/dshills/glyphfall/internal/renderer"
	"github.com/dshills/glyphfall/internal/renderer/backend"
)

func TestNewGradientEmptyTail(t *testing.T) {
	_, err := NewGradient(1, nil)
	if !errors.Is(err, ErrEmptyTail) {
		t.Errorf("err = %v, want ErrEmptyTail", err)
	}
}

func TestGradientLen(t *testing.T) {
	g := testGradient(t)
	if g.Len() != 5 {
		t.Errorf("Len = %d, want 5", g.Len())
	}
	if g.TailLen() != 4 {
		t.Errorf("TailLen = %d, want 4", g.TailLen())
	}
	if g.Head() != 1 {
		t.Errorf("Head = %d, want 1", g.Head())
	}
}

func TestGradientAt(t *testing.T) {
	g := testGradient(t)

	tests := []struct {
		i    int
		want renderer.StyleToken
	}{
		{-1, 1},
		{0, 1},
		{1, 2},
		{4, 5},
		{9, 5},
	}

	for _, tt := range tests {
		if got := g.At(tt.i); got != tt.want {
			t.Errorf("At(%d) = %d, want %d", tt.i, got, tt.want)
		}
	}
}

func TestStyleForOffsetRatio(t *testing.T) {
	g := testGradient(t)

	tests := []struct {
		ratio float64
		want  renderer.StyleToken
	}{
		{0, 2},
		{0.25, 2},
		{0.33, 2},
		{0.34, 3},
		{0.5, 3},
		{0.66, 3},
		{0.67, 4},
		{0.99, 4},
		{1, 5},
		{-0.5, 2},
		{1.5, 5},
		{math.NaN(), 2},
	}

	for _, tt := range tests {
		if got := g.StyleForOffsetRatio(tt.ratio); got != tt.want {
			t.Errorf("StyleForOffsetRatio(%v) = %d, want %d", tt.ratio, got, tt.want)
		}
	}
}

func TestStyleForOffsetRatioNeverHead(t *testing.T) {
	g := testGradient(t)
	for i := 0; i <= 100; i++ {
		if got := g.StyleForOffsetRatio(float64(i) / 100); got == g.Head() {
			t.Fatalf("ratio %v mapped to head style", float64(i)/100)
		}
	}
}

func TestStyleForOffsetRatioSingleTail(t *testing.T) {
	g, err := NewGradient(1, []renderer.StyleToken{2})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range []float64{0, 0.5, 1} {
		if got := g.StyleForOffsetRatio(r); got != 2 {
			t.Errorf("StyleForOffsetRatio(%v) = %d, want 2", r, got)
		}
	}
}

func TestRegisterGradient(t *testing.T) {
	surface := backend.NewNullBackend(10, 10)
	head := renderer.ColorWhite
	tail := []renderer.Color{renderer.ColorGreen, renderer.ColorFromRGB(0, 128, 0)}

	g, err := RegisterGradient(surface, head, tail)
	if err != nil {
		t.Fatalf("RegisterGradient: %v", err)
	}

	if g.Head() != 1 {
		t.Errorf("Head = %d, want 1", g.Head())
	}
	if g.At(1) != 2 || g.At(2) != 3 {
		t.Errorf("tail tokens = %d,%d, want 2,3", g.At(1), g.At(2))
	}

	got, ok := surface.StyleColor(g.Head())
	if !ok || !got.Equals(head) {
		t.Errorf("head color = %v, want %v", got, head)
	}
	got, ok = surface.StyleColor(g.At(2))
	if !ok || !got.Equals(tail[1]) {
		t.Errorf("last tail color = %v, want %v", got, tail[1])
	}
}

func TestRegisterGradientEmptyTail(t *testing.T) {
	_, err := RegisterGradient(backend.NewNullBackend(1, 1), renderer.ColorWhite, nil)
	if !errors.Is(err, ErrEmptyTail) {
		t.Errorf("err = %v, want ErrEmptyTail", err)
	}
}

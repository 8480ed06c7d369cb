package rain

import (
	"math/rand/v2"
	"testing"

	"github.com/dshills/glyphfall/internal/renderer"
)

func testParams() Params {
	p := DefaultParams()
	p.Alphabet = []rune("ABCDEFGH")
	p.HeadGlyph = 0
	p.CharChangeProbability = 0
	p.ResetProbability = 0
	p.FadeSteps = 10
	p.FadeSpeed = 0.125
	p.BottomBoost = 1.0
	p.Intensity = 1.0
	return p
}

func testGradient(t *testing.T) *Gradient {
	t.Helper()
	g, err := NewGradient(1, []renderer.StyleToken{2, 3, 4, 5})
	if err != nil {
		t.Fatalf("NewGradient: %v", err)
	}
	return g
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

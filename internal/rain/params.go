package rain

import (
	"math"
	"time"

	"github.com/dshills/glyphfall/internal/renderer"
)

// Params holds the simulation tunables. A Params value is fixed at
// startup and shared read-only by the scheduler and every Column.
type Params struct {
	// Alphabet is the set of glyphs tails are drawn from.
	Alphabet []rune
	// SymbolDiversity is the leading fraction of Alphabet in use.
	SymbolDiversity float64
	// HeadGlyph is drawn at every trail head. Zero draws the first tail
	// glyph instead.
	HeadGlyph rune
	// Background is the glyph of an unlit cell.
	Background rune

	// FallSpeed is the mean number of rows a head advances per tick.
	FallSpeed float64
	// SpeedVariation spreads column speeds uniformly over
	// FallSpeed × [1−v, 1+v].
	SpeedVariation float64

	// FadeSpeed is the fade level removed per tick at the top row.
	FadeSpeed float64
	// FadeSteps is the fade level of a freshly written head.
	FadeSteps float64
	// BottomBoost makes cells near the bottom fade faster.
	BottomBoost float64
	// TailFadeCurve is the exponent of the along-tail fade curve.
	TailFadeCurve float64

	TailMin int
	TailMax int

	// CharChangeProbability is the per-character, per-tick chance of a
	// tail glyph being redrawn.
	CharChangeProbability float64
	// ResetProbability is the per-tick chance of a column restarting early.
	ResetProbability float64
	// PauseDuration is how long a column waits after a reset.
	PauseDuration time.Duration

	// ColumnDensity is the fraction of screen columns that carry a trail.
	ColumnDensity float64
	// Brightness below DimBrightness dims the far half of every tail.
	Brightness float64
	// Intensity scales both fall speed and fade decay.
	Intensity float64

	PulseRate      float64
	PulseAmplitude float64

	// ScreenFillRate is the fraction of cells sprinkled with dim glyphs
	// when the animation starts.
	ScreenFillRate float64

	// FrameRate is the number of ticks per second.
	FrameRate float64
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Alphabet:              []rune("ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789"),
		SymbolDiversity:       1.0,
		HeadGlyph:             '│',
		Background:            ' ',
		FallSpeed:             0.35,
		SpeedVariation:        0.5,
		FadeSpeed:             0.35,
		FadeSteps:             10,
		BottomBoost:           1.0,
		TailFadeCurve:         1.6,
		TailMin:               6,
		TailMax:               24,
		CharChangeProbability: 0.02,
		ResetProbability:      0.002,
		PauseDuration:         0,
		ColumnDensity:         0.6,
		Brightness:            0.5,
		Intensity:             1.0,
		PulseRate:             0,
		PulseAmplitude:        0,
		ScreenFillRate:        0,
		FrameRate:             30,
	}
}

// DimBrightness is the Brightness below which tails are drawn with a
// dimmed far half.
const DimBrightness = 0.5

// Symbols returns the glyphs in use: the first SymbolDiversity share of
// Alphabet, never fewer than one.
func (p Params) Symbols() []rune {
	n := len(p.Alphabet)
	if p.SymbolDiversity > 0 && p.SymbolDiversity < 1 {
		n = max(1, int(float64(n)*p.SymbolDiversity))
	}
	return p.Alphabet[:n]
}

// FrameInterval is the sleep between ticks.
func (p Params) FrameInterval() time.Duration {
	if p.FrameRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / p.FrameRate)
}

// PulseFactor returns 1 + amplitude × sin(2π × rate × elapsed).
func (p Params) PulseFactor(elapsed time.Duration) float64 {
	if p.PulseAmplitude == 0 {
		return 1
	}
	return 1 + p.PulseAmplitude*math.Sin(2*math.Pi*p.PulseRate*elapsed.Seconds())
}

// ColumnCount returns how many trails fit a screen of the given width.
// Any non-empty screen carries at least one.
func (p Params) ColumnCount(width int) int {
	if width <= 0 {
		return 0
	}
	return min(max(1, int(float64(width)*p.ColumnDensity)), width)
}

// SlotX spreads n slots evenly over width and returns the screen column
// of slot i.
func SlotX(i, n, width int) int {
	if n <= 0 {
		return 0
	}
	return i * width / n
}

// Emphasis maps a fade level onto a brightness tier: above 80% of
// FadeSteps bold, above 60% plain, otherwise dim.
func (p Params) Emphasis(fade float64) renderer.Attribute {
	switch {
	case fade > 0.8*p.FadeSteps:
		return renderer.AttrBold
	case fade > 0.6*p.FadeSteps:
		return renderer.AttrNone
	default:
		return renderer.AttrDim
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/glyphfall/internal/renderer"
)

// LogLevels lists the accepted logging.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks every value and reports all problems at once as
// *ValidationErrors.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}
	c.validateRain(errs)
	c.validateColors(errs)
	c.validateLogging(errs)
	return errs.AsError()
}

func (c *Config) validateRain(errs *ValidationErrors) {
	r := &c.Rain

	validateAlphabet(errs, r.Alphabet, r.Background)
	if r.HeadGlyph != "" && (len([]rune(r.HeadGlyph)) != 1 || uniseg.StringWidth(r.HeadGlyph) != 1) {
		errs.AddWithValue("rain.head_glyph", "must be empty or one single-width character", r.HeadGlyph)
	}

	positive := []struct {
		path  string
		value float64
	}{
		{"rain.fall_speed", r.FallSpeed},
		{"rain.fade_speed", r.FadeSpeed},
		{"rain.fade_steps", r.FadeSteps},
		{"rain.frame_rate", r.FrameRate},
		{"rain.tail_fade_curve", r.TailFadeCurve},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs.AddWithValue(p.path, "must be greater than 0", p.value)
		}
	}

	nonNegative := []struct {
		path  string
		value float64
	}{
		{"rain.bottom_boost", r.BottomBoost},
		{"rain.intensity", r.Intensity},
		{"rain.pulse_rate", r.PulseRate},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			errs.AddWithValue(p.path, "must not be negative", p.value)
		}
	}

	probabilities := []struct {
		path  string
		value float64
	}{
		{"rain.char_change_probability", r.CharChangeProbability},
		{"rain.reset_probability", r.ResetProbability},
		{"rain.brightness", r.Brightness},
		{"rain.screen_fill_rate", r.ScreenFillRate},
	}
	for _, p := range probabilities {
		if p.value < 0 || p.value > 1 {
			errs.AddWithValue(p.path, "must be between 0 and 1", p.value)
		}
	}

	if r.SpeedVariation < 0 || r.SpeedVariation >= 1 {
		errs.AddWithValue("rain.speed_variation", "must be in [0, 1)", r.SpeedVariation)
	}
	if r.PulseAmplitude < 0 || r.PulseAmplitude >= 1 {
		errs.AddWithValue("rain.pulse_amplitude", "must be in [0, 1)", r.PulseAmplitude)
	}
	if r.ColumnDensity <= 0 || r.ColumnDensity > 1 {
		errs.AddWithValue("rain.column_density", "must be in (0, 1]", r.ColumnDensity)
	}
	if r.SymbolDiversity <= 0 || r.SymbolDiversity > 1 {
		errs.AddWithValue("rain.symbol_diversity", "must be in (0, 1]", r.SymbolDiversity)
	}
	if r.TailMin < 1 {
		errs.AddWithValue("rain.tail_min", "must be at least 1", r.TailMin)
	}
	if r.TailMax < r.TailMin {
		errs.AddWithValue("rain.tail_max", fmt.Sprintf("must not be less than tail_min (%d)", r.TailMin), r.TailMax)
	}
	if r.Pause < 0 {
		errs.AddWithValue("rain.pause", "must not be negative", r.Pause.Std())
	}
}

// validateAlphabet requires every glyph to be a single code point that
// occupies exactly one terminal cell, and the background to be distinct
// from the alphabet.
func validateAlphabet(errs *ValidationErrors, alphabet, background string) {
	if alphabet == "" {
		errs.Add("rain.alphabet", "must not be empty")
	}

	g := uniseg.NewGraphemes(alphabet)
	for g.Next() {
		cluster := g.Str()
		if len(g.Runes()) != 1 || g.Width() != 1 {
			errs.AddWithValue("rain.alphabet", "glyphs must be single-width characters", cluster)
		}
	}

	if len([]rune(background)) != 1 || uniseg.StringWidth(background) != 1 {
		errs.AddWithValue("rain.background", "must be one single-width character", background)
		return
	}
	if strings.Contains(alphabet, background) {
		errs.AddWithValue("rain.background", "must not appear in the alphabet", background)
	}
}

func (c *Config) validateColors(errs *ValidationErrors) {
	if _, err := renderer.ParseColor(c.Colors.Head); err != nil {
		errs.AddWithValue("colors.head", "invalid color", c.Colors.Head)
	}
	if len(c.Colors.Tail) == 0 {
		errs.Add("colors.tail", "must list at least one color")
	}
	for i, s := range c.Colors.Tail {
		if _, err := renderer.ParseColor(s); err != nil {
			errs.AddWithValue(fmt.Sprintf("colors.tail[%d]", i), "invalid color", s)
		}
	}
	// Style slots go up to 1 + len(tail); keep them inside the 256 color pairs.
	if c.Colors.TailSteps < 0 || c.Colors.TailSteps > 254 {
		errs.AddWithValue("colors.tail_steps", "must be between 0 and 254", c.Colors.TailSteps)
	}
	if len(c.Colors.Tail) > 254 {
		errs.AddWithValue("colors.tail", "must list at most 254 colors", len(c.Colors.Tail))
	}
}

func (c *Config) validateLogging(errs *ValidationErrors) {
	for _, l := range LogLevels {
		if c.Logging.Level == l {
			return
		}
	}
	errs.AddWithValue("logging.level", fmt.Sprintf("must be one of %s", strings.Join(LogLevels, ", ")), c.Logging.Level)
}

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dshills/glyphfall/internal/config/loader"
	"github.com/dshills/glyphfall/internal/rain"
	"github.com/dshills/glyphfall/internal/renderer"
)

// Config is the complete glyphfall configuration.
type Config struct {
	Rain    RainConfig    `toml:"rain"`
	Colors  ColorsConfig  `toml:"colors"`
	Logging LoggingConfig `toml:"logging"`
}

// RainConfig holds the simulation tunables.
type RainConfig struct {
	Alphabet              string   `toml:"alphabet"`
	SymbolDiversity       float64  `toml:"symbol_diversity"`
	HeadGlyph             string   `toml:"head_glyph"`
	Background            string   `toml:"background"`
	FallSpeed             float64  `toml:"fall_speed"`
	SpeedVariation        float64  `toml:"speed_variation"`
	FadeSpeed             float64  `toml:"fade_speed"`
	FadeSteps             float64  `toml:"fade_steps"`
	FrameRate             float64  `toml:"frame_rate"`
	TailMin               int      `toml:"tail_min"`
	TailMax               int      `toml:"tail_max"`
	BottomBoost           float64  `toml:"bottom_boost"`
	CharChangeProbability float64  `toml:"char_change_probability"`
	ColumnDensity         float64  `toml:"column_density"`
	Brightness            float64  `toml:"brightness"`
	TailFadeCurve         float64  `toml:"tail_fade_curve"`
	ResetProbability      float64  `toml:"reset_probability"`
	Pause                 Duration `toml:"pause"`
	PulseRate             float64  `toml:"pulse_rate"`
	PulseAmplitude        float64  `toml:"pulse_amplitude"`
	Intensity             float64  `toml:"intensity"`
	ScreenFillRate        float64  `toml:"screen_fill_rate"`
}

// ColorsConfig holds the trail colors. Each is a hex string, a palette
// name such as "green", or "default".
type ColorsConfig struct {
	Head string   `toml:"head"`
	Tail []string `toml:"tail"`
	// TailSteps expands Tail into a ramp of this many colors on true
	// color terminals when it is larger than len(Tail).
	TailSteps int `toml:"tail_steps"`
}

// LoggingConfig controls the diagnostic log.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := rain.DefaultParams()
	return &Config{
		Rain: RainConfig{
			Alphabet:              string(p.Alphabet),
			SymbolDiversity:       p.SymbolDiversity,
			HeadGlyph:             string(p.HeadGlyph),
			Background:            string(p.Background),
			FallSpeed:             p.FallSpeed,
			SpeedVariation:        p.SpeedVariation,
			FadeSpeed:             p.FadeSpeed,
			FadeSteps:             p.FadeSteps,
			FrameRate:             p.FrameRate,
			TailMin:               p.TailMin,
			TailMax:               p.TailMax,
			BottomBoost:           p.BottomBoost,
			CharChangeProbability: p.CharChangeProbability,
			ColumnDensity:         p.ColumnDensity,
			Brightness:            p.Brightness,
			TailFadeCurve:         p.TailFadeCurve,
			ResetProbability:      p.ResetProbability,
			Pause:                 Duration(p.PauseDuration),
			PulseRate:             p.PulseRate,
			PulseAmplitude:        p.PulseAmplitude,
			Intensity:             p.Intensity,
			ScreenFillRate:        p.ScreenFillRate,
		},
		Colors: ColorsConfig{
			Head:      "#E8FFE8",
			Tail:      []string{"#00FF41", "#008F11", "#003B00"},
			TailSteps: 8,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "glyphfall", "config.toml")
}

// Load returns the defaults overlaid with the TOML file at path. A missing
// file yields the defaults unless mustExist is set, in which case it is
// ErrFileNotFound. An empty path skips the file entirely.
func Load(fsys loader.FileSystem, path string, mustExist bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	found, err := loader.NewTOMLLoaderWithFS(fsys, path).LoadInto(cfg)
	if err != nil {
		return nil, err
	}
	if !found && mustExist {
		return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
	}
	return cfg, nil
}

// WriteTOML writes the configuration as TOML.
func (c *Config) WriteTOML(w io.Writer) error {
	return loader.Encode(w, c)
}

// Params converts the rain section into simulation parameters.
// Call Validate first; Params only reports conversion failures.
func (c *Config) Params() (rain.Params, error) {
	bg := []rune(c.Rain.Background)
	if len(bg) != 1 {
		return rain.Params{}, fmt.Errorf("rain.background: want one glyph, got %q", c.Rain.Background)
	}
	var head rune
	if c.Rain.HeadGlyph != "" {
		hg := []rune(c.Rain.HeadGlyph)
		if len(hg) != 1 {
			return rain.Params{}, fmt.Errorf("rain.head_glyph: want one glyph, got %q", c.Rain.HeadGlyph)
		}
		head = hg[0]
	}

	return rain.Params{
		Alphabet:              []rune(c.Rain.Alphabet),
		SymbolDiversity:       c.Rain.SymbolDiversity,
		HeadGlyph:             head,
		Background:            bg[0],
		FallSpeed:             c.Rain.FallSpeed,
		SpeedVariation:        c.Rain.SpeedVariation,
		FadeSpeed:             c.Rain.FadeSpeed,
		FadeSteps:             c.Rain.FadeSteps,
		BottomBoost:           c.Rain.BottomBoost,
		TailFadeCurve:         c.Rain.TailFadeCurve,
		TailMin:               c.Rain.TailMin,
		TailMax:               c.Rain.TailMax,
		CharChangeProbability: c.Rain.CharChangeProbability,
		ResetProbability:      c.Rain.ResetProbability,
		PauseDuration:         c.Rain.Pause.Std(),
		ColumnDensity:         c.Rain.ColumnDensity,
		Brightness:            c.Rain.Brightness,
		Intensity:             c.Rain.Intensity,
		PulseRate:             c.Rain.PulseRate,
		PulseAmplitude:        c.Rain.PulseAmplitude,
		ScreenFillRate:        c.Rain.ScreenFillRate,
		FrameRate:             c.Rain.FrameRate,
	}, nil
}

// GradientColors parses the head color and the tail stops. Expanding the
// stops to TailSteps is left to the caller, which knows whether the
// terminal can show a ramp.
func (c *Config) GradientColors() (renderer.Color, []renderer.Color, error) {
	head, err := renderer.ParseColor(c.Colors.Head)
	if err != nil {
		return renderer.Color{}, nil, fmt.Errorf("colors.head: %w", err)
	}

	stops := make([]renderer.Color, len(c.Colors.Tail))
	for i, s := range c.Colors.Tail {
		stops[i], err = renderer.ParseColor(s)
		if err != nil {
			return renderer.Color{}, nil, fmt.Errorf("colors.tail[%d]: %w", i, err)
		}
	}

	return head, stops, nil
}

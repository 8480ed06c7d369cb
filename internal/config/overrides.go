package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: rain.fall_speed is read from
// GLYPHFALL_RAIN_FALL_SPEED.
const EnvPrefix = "GLYPHFALL"

// NewViper returns a viper instance that resolves configuration keys from
// GLYPHFALL_* environment variables. Command flags are bound onto it with
// BindPFlag by the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

type floatKey struct {
	key string
	dst func(*Config) *float64
}

type intKey struct {
	key string
	dst func(*Config) *int
}

type stringKey struct {
	key string
	dst func(*Config) *string
}

var floatKeys = []floatKey{
	{"rain.fall_speed", func(c *Config) *float64 { return &c.Rain.FallSpeed }},
	{"rain.speed_variation", func(c *Config) *float64 { return &c.Rain.SpeedVariation }},
	{"rain.fade_speed", func(c *Config) *float64 { return &c.Rain.FadeSpeed }},
	{"rain.fade_steps", func(c *Config) *float64 { return &c.Rain.FadeSteps }},
	{"rain.frame_rate", func(c *Config) *float64 { return &c.Rain.FrameRate }},
	{"rain.bottom_boost", func(c *Config) *float64 { return &c.Rain.BottomBoost }},
	{"rain.char_change_probability", func(c *Config) *float64 { return &c.Rain.CharChangeProbability }},
	{"rain.column_density", func(c *Config) *float64 { return &c.Rain.ColumnDensity }},
	{"rain.brightness", func(c *Config) *float64 { return &c.Rain.Brightness }},
	{"rain.symbol_diversity", func(c *Config) *float64 { return &c.Rain.SymbolDiversity }},
	{"rain.screen_fill_rate", func(c *Config) *float64 { return &c.Rain.ScreenFillRate }},
	{"rain.tail_fade_curve", func(c *Config) *float64 { return &c.Rain.TailFadeCurve }},
	{"rain.reset_probability", func(c *Config) *float64 { return &c.Rain.ResetProbability }},
	{"rain.pulse_rate", func(c *Config) *float64 { return &c.Rain.PulseRate }},
	{"rain.pulse_amplitude", func(c *Config) *float64 { return &c.Rain.PulseAmplitude }},
	{"rain.intensity", func(c *Config) *float64 { return &c.Rain.Intensity }},
}

var intKeys = []intKey{
	{"rain.tail_min", func(c *Config) *int { return &c.Rain.TailMin }},
	{"rain.tail_max", func(c *Config) *int { return &c.Rain.TailMax }},
	{"colors.tail_steps", func(c *Config) *int { return &c.Colors.TailSteps }},
}

var stringKeys = []stringKey{
	{"rain.alphabet", func(c *Config) *string { return &c.Rain.Alphabet }},
	{"rain.background", func(c *Config) *string { return &c.Rain.Background }},
	{"rain.head_glyph", func(c *Config) *string { return &c.Rain.HeadGlyph }},
	{"colors.head", func(c *Config) *string { return &c.Colors.Head }},
	{"logging.level", func(c *Config) *string { return &c.Logging.Level }},
	{"logging.file", func(c *Config) *string { return &c.Logging.File }},
}

// ApplyOverrides copies every key that is set in v onto c. Keys that are
// unset keep the value from the file or the defaults.
func ApplyOverrides(c *Config, v *viper.Viper) error {
	for _, k := range floatKeys {
		if v.IsSet(k.key) {
			*k.dst(c) = v.GetFloat64(k.key)
		}
	}
	for _, k := range intKeys {
		if v.IsSet(k.key) {
			*k.dst(c) = v.GetInt(k.key)
		}
	}
	for _, k := range stringKeys {
		if v.IsSet(k.key) {
			*k.dst(c) = v.GetString(k.key)
		}
	}

	if v.IsSet("colors.tail") {
		c.Colors.Tail = v.GetStringSlice("colors.tail")
	}
	if v.IsSet("rain.pause") {
		d, err := time.ParseDuration(v.GetString("rain.pause"))
		if err != nil {
			return fmt.Errorf("rain.pause: %w", err)
		}
		c.Rain.Pause = Duration(d)
	}

	return nil
}

package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	// G and B are ignored in indexed mode.
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack = Color{R: 0, G: 0, B: 0}
	ColorWhite = Color{R: 255, G: 255, B: 255}
	ColorGreen = Color{R: 0, G: 255, B: 0}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Indexed: false}
}

// ColorFromIndex creates an indexed palette color.
// Index should be 0-255 for standard terminal palettes.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex creates a color from a hex string.
// Supports formats: "#RGB", "#RRGGBB", "RGB", "RRGGBB".
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")

	// Short form: RGB -> RRGGBB
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color length: %q", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %q", hex)
	}

	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// namedColors maps the basic terminal color names onto palette indices.
var namedColors = map[string]uint8{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// ParseColor accepts a basic color name ("green", "cyan", ...), "default"
// or a hex color. Names select the terminal's own palette entries.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "default" {
		return ColorDefault, nil
	}
	if idx, ok := namedColors[name]; ok {
		return ColorFromIndex(idx), nil
	}
	c, err := ColorFromHex(s)
	if err != nil {
		return Color{}, fmt.Errorf("unknown color %q: not a color name or hex value", s)
	}
	return c, nil
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return c.ToHex()
}

// ToHex returns the hex representation of a true color.
// Returns empty string for indexed colors.
func (c Color) ToHex() string {
	if c.Indexed {
		return ""
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// colorful converts a true color into the go-colorful representation.
func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return ColorFromRGB(r, g, b)
}

// Blend blends two colors in CIE-L*a*b* space.
// Amount 0.0 = c, 1.0 = other. Indexed and default colors snap to the
// nearer end since they cannot be interpolated.
func (c Color) Blend(other Color, amount float64) Color {
	switch {
	case amount <= 0:
		return c
	case amount >= 1:
		return other
	}
	if c.Indexed || other.Indexed || c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	return fromColorful(c.colorful().BlendLab(other.colorful(), amount))
}

// Ramp expands a list of color stops into steps colors spaced evenly along
// the polyline through the stops. The first and last stops are always
// reproduced exactly. When steps is not larger than the number of stops,
// or any stop is a palette or default color, the stops are returned
// unchanged.
func Ramp(stops []Color, steps int) []Color {
	out := make([]Color, 0, max(steps, len(stops)))
	if len(stops) < 2 || steps <= len(stops) {
		return append(out, stops...)
	}
	for _, c := range stops {
		if c.Indexed || c.Default {
			return append(out, stops...)
		}
	}

	segments := float64(len(stops) - 1)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1) * segments
		seg := int(t)
		frac := t - float64(seg)
		switch {
		case seg >= len(stops)-1:
			out = append(out, stops[len(stops)-1])
		case frac == 0:
			out = append(out, stops[seg])
		default:
			out = append(out, stops[seg].Blend(stops[seg+1], frac))
		}
	}
	return out
}

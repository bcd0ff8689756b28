// Package color implements the pure color math the matching pipeline is
// built on: hex/RGB/HSV conversions, Euclidean RGB distance, WCAG relative
// luminance and contrast, and the qualitative banding derived from them.
package color

import (
	"fmt"
	"math"
	"strings"

	"dyelens/internal/platform/errors"
)

// RGB is a color in the 0-255 cube.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSV holds hue in [0,360) degrees and saturation/value as percentages.
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// MaxDistance is the RGB-cube diagonal, the largest value Distance can return.
var MaxDistance = math.Sqrt(3 * 255 * 255)

// ParseHex parses a 6-digit hex color, with or without a leading '#',
// case-insensitively.
func ParseHex(s string) (RGB, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(trimmed) != 6 {
		return RGB{}, errors.New(errors.KindDecodeFailed, "parse_hex",
			fmt.Sprintf("invalid hex color %q", s))
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.ToLower(trimmed), "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, errors.Wrap(errors.KindDecodeFailed, "parse_hex",
			fmt.Sprintf("invalid hex color %q", s), err)
	}
	return RGB{R: r, G: g, B: b}, nil
}

// Hex renders the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HSV converts to hue/saturation/value. Hue is 0 for achromatic colors.
func (c RGB) HSV() HSV {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	var h float64
	switch {
	case delta == 0:
		h = 0
	case max == r:
		h = 60 * math.Mod((g-b)/delta, 6)
	case max == g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}

	var s float64
	if max > 0 {
		s = delta / max
	}

	return HSV{H: h, S: s * 100, V: max * 100}
}

func (v HSV) String() string {
	return fmt.Sprintf("hsv(%.0f, %.0f%%, %.0f%%)", v.H, v.S, v.V)
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Distance is the Euclidean distance between two colors in the RGB cube,
// in [0, MaxDistance].
func Distance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// RelativeLuminance computes WCAG relative luminance: sRGB channels are
// linearized (threshold 0.03928, divisor 12.92, gamma 2.4) and weighted
// 0.2126/0.7152/0.0722.
func RelativeLuminance(c RGB) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(channel uint8) float64 {
	x := float64(channel) / 255
	if x <= 0.03928 {
		return x / 12.92
	}
	return math.Pow((x+0.055)/1.055, 2.4)
}

// ContrastRatio computes the WCAG contrast ratio between two colors,
// always >= 1.
func ContrastRatio(a, b RGB) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

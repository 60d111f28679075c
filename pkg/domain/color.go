package domain

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB triple with 8 bits per channel, the channel domain of the
// reference palette formats. Deeper channel layouts are an export concern
// handled by the format policy.
type Color struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// NewColor creates a color from its channels.
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex renders the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String is the hex rendering.
func (c Color) String() string {
	return c.Hex()
}

// ParseHex parses "#RRGGBB" (case-insensitive) into a Color.
func ParseHex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return fromColorful(cf), nil
}

// BlendSpace selects the color space a ramp interpolates in.
type BlendSpace string

// Supported interpolation spaces. RGB (linear in channel values) is the
// default and matches the reference ramps; the others come from go-colorful.
const (
	BlendRGB       BlendSpace = "rgb"
	BlendLinearRGB BlendSpace = "linear-rgb"
	BlendHSV       BlendSpace = "hsv"
	BlendLab       BlendSpace = "lab"
)

// KnownBlendSpace reports whether s names a supported interpolation space.
func KnownBlendSpace(s BlendSpace) bool {
	switch s {
	case BlendRGB, BlendLinearRGB, BlendHSV, BlendLab:
		return true
	}
	return false
}

// Lerp interpolates between a and b at t in [0,1] within the given space.
// An unknown space falls back to channel-linear RGB.
func Lerp(a, b Color, t float64, space BlendSpace) Color {
	switch space {
	case BlendLinearRGB:
		return lerpLinearRGB(a, b, t)
	case BlendHSV:
		return fromColorful(toColorful(a).BlendHsv(toColorful(b), t))
	case BlendLab:
		return fromColorful(toColorful(a).BlendLab(toColorful(b), t).Clamped())
	default:
		return lerpChannels(a, b, t)
	}
}

// lerpChannels interpolates each 8-bit channel independently, matching the
// reference implementation's linear RGB ramps.
func lerpChannels(a, b Color, t float64) Color {
	ch := func(x, y uint8) uint8 {
		v := float64(x) + (float64(y)-float64(x))*t
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return uint8(v + 0.5)
	}
	return Color{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B)}
}

// lerpLinearRGB interpolates in gamma-decoded RGB: both endpoints are
// linearized, blended channel-wise, and encoded back to sRGB.
func lerpLinearRGB(a, b Color, t float64) Color {
	r1, g1, b1 := toColorful(a).LinearRgb()
	r2, g2, b2 := toColorful(b).LinearRgb()
	c := colorful.LinearRgb(
		r1+(r2-r1)*t,
		g1+(g2-g1)*t,
		b1+(b2-b1)*t,
	)
	return fromColorful(c.Clamped())
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}
}

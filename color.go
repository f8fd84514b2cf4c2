package frost

import (
	"image/color"
	"strings"
)

// RGBA represents a straight (non-premultiplied) color.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// RGBA8 creates a color from 8-bit components.
func RGBA8(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// FromColor converts a standard color.Color to a straight RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	fa := float32(a)
	return RGBA{
		R: float32(r) / fa,
		G: float32(g) / fa,
		B: float32(b) / fa,
		A: fa / 65535,
	}
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float32) RGBA {
	c.A = a
	return c
}

// Premultiply returns the color with RGB scaled by alpha.
func (c RGBA) Premultiply() RGBA {
	return RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Unpremultiply is the inverse of Premultiply. Fully transparent colors
// become Transparent.
func (c RGBA) Unpremultiply() RGBA {
	if c.A <= 0 {
		return Transparent
	}
	return RGBA{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// Scale multiplies every component, alpha included, by s.
// On premultiplied colors this is an opacity change.
func (c RGBA) Scale(s float32) RGBA {
	return RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Add returns the componentwise sum.
func (c RGBA) Add(o RGBA) RGBA {
	return RGBA{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A + o.A}
}

// Over composites premultiplied c over premultiplied dst.
func (c RGBA) Over(dst RGBA) RGBA {
	return c.Add(dst.Scale(1 - c.A))
}

// Lerp linearly interpolates between two colors.
func (c RGBA) Lerp(o RGBA, t float32) RGBA {
	return RGBA{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Clamp limits every component to [0, 1].
func (c RGBA) Clamp() RGBA {
	return RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// Luminance returns the Rec. 709 luma of the color's RGB.
func (c RGBA) Luminance() float32 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without '#'.
// Malformed input yields opaque black and ok == false.
func Hex(hex string) (c RGBA, ok bool) {
	hex = strings.TrimPrefix(hex, "#")

	var v [4]uint32
	v[3] = 255
	switch len(hex) {
	case 3, 4:
		for i := range len(hex) {
			n, good := hexDigit(hex[i])
			if !good {
				return Black, false
			}
			v[i] = n * 17
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			hi, good1 := hexDigit(hex[i])
			lo, good2 := hexDigit(hex[i+1])
			if !good1 || !good2 {
				return Black, false
			}
			v[i/2] = hi<<4 | lo
		}
	default:
		return Black, false
	}
	return RGBA8(uint8(v[0]), uint8(v[1]), uint8(v[2]), uint8(v[3])), true
}

func hexDigit(c byte) (uint32, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint32(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return uint32(c-'A') + 10, true
	}
	return 0, false
}

// ParseColor accepts a palette name (case-insensitive, see Named) or a hex
// string.
func ParseColor(s string) (RGBA, bool) {
	if c, ok := Named(s); ok {
		return c, true
	}
	return Hex(s)
}

func to8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

// from8 is the inverse of to8 for a single channel.
func from8(v uint8) float32 {
	return float32(v) / 255
}

// Darken scales RGB toward black by factor in [0, 1]; 1 leaves the color
// unchanged, 0 yields black. Alpha is preserved.
func (c RGBA) Darken(factor float32) RGBA {
	f := clamp01(factor)
	return RGBA{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A}
}

// Lighten moves RGB toward white by factor in [0, 1]. Alpha is preserved.
func (c RGBA) Lighten(factor float32) RGBA {
	f := clamp01(factor)
	return RGBA{
		R: c.R + (1-c.R)*f,
		G: c.G + (1-c.G)*f,
		B: c.B + (1-c.B)*f,
		A: c.A,
	}
}

package frost

import "strings"

// Common colors.
var (
	Transparent = RGBA{}
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Gray        = RGB(0.5, 0.5, 0.5)
)

// palette maps lower-case names to colors. The values are the ones the
// component styles have always used, which are close to but not exactly the
// CSS keywords.
var palette = map[string]RGBA{
	"aliceblue":    RGB(0.94, 0.97, 1.0),
	"antiquewhite": RGB(0.98, 0.92, 0.84),
	"aquamarine":   RGB(0.49, 1.0, 0.83),
	"azure":        RGB(0.94, 1.0, 1.0),
	"beige":        RGB(0.96, 0.96, 0.86),
	"bisque":       RGB(1.0, 0.89, 0.77),
	"black":        Black,
	"blue":         Blue,
	"crimson":      RGB(0.86, 0.08, 0.24),
	"cyan":         RGB(0.0, 1.0, 1.0),
	"darkgray":     RGB(0.25, 0.25, 0.25),
	"darkgreen":    RGB(0.0, 0.5, 0.0),
	"fuchsia":      RGB(1.0, 0.0, 1.0),
	"gold":         RGB(1.0, 0.84, 0.0),
	"gray":         Gray,
	"green":        Green,
	"indigo":       RGB(0.29, 0.0, 0.51),
	"limegreen":    RGB(0.2, 0.8, 0.2),
	"maroon":       RGB(0.5, 0.0, 0.0),
	"midnightblue": RGB(0.1, 0.1, 0.44),
	"navy":         RGB(0.0, 0.0, 0.5),
	"olive":        RGB(0.5, 0.5, 0.0),
	"orange":       RGB(1.0, 0.65, 0.0),
	"orangered":    RGB(1.0, 0.27, 0.0),
	"pink":         RGB(1.0, 0.08, 0.58),
	"purple":       RGB(0.5, 0.0, 0.5),
	"red":          Red,
	"salmon":       RGB(0.98, 0.5, 0.45),
	"seagreen":     RGB(0.18, 0.55, 0.34),
	"silver":       RGB(0.75, 0.75, 0.75),
	"teal":         RGB(0.0, 0.5, 0.5),
	"tomato":       RGB(1.0, 0.39, 0.28),
	"transparent":  Transparent,
	"turquoise":    RGB(0.25, 0.88, 0.82),
	"violet":       RGB(0.93, 0.51, 0.93),
	"white":        White,
	"yellow":       RGB(1.0, 1.0, 0.0),
	"yellowgreen":  RGB(0.6, 0.8, 0.2),
}

// Named looks up a palette color by name. Matching ignores case, spaces,
// hyphens and underscores, so "Midnight Blue" and "midnight_blue" both work.
func Named(name string) (RGBA, bool) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(name))
	c, ok := palette[key]
	return c, ok
}

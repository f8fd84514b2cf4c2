package frost

import "github.com/chewxy/math32"

// Vec2 is a 2D vector in pixel space. Y grows downward.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Abs returns the elementwise absolute value.
func (v Vec2) Abs() Vec2 {
	return Vec2{X: math32.Abs(v.X), Y: math32.Abs(v.Y)}
}

// Max returns the elementwise maximum of v and w.
func (v Vec2) Max(w Vec2) Vec2 {
	return Vec2{X: math32.Max(v.X, w.X), Y: math32.Max(v.Y, w.Y)}
}

// Length returns the Euclidean length of the vector.
func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// MinElem returns the smaller component.
func (v Vec2) MinElem() float32 {
	return math32.Min(v.X, v.Y)
}

// MaxElem returns the larger component.
func (v Vec2) MaxElem() float32 {
	return math32.Max(v.X, v.Y)
}

// Rect is an axis-aligned rectangle given by its minimum and maximum corners.
type Rect struct {
	Min, Max Vec2
}

// RectXYWH creates a rectangle from its top-left corner and size.
func RectXYWH(x, y, w, h float32) Rect {
	return Rect{Min: Vec2{X: x, Y: y}, Max: Vec2{X: x + w, Y: y + h}}
}

// Size returns the width and height of the rectangle.
func (r Rect) Size() Vec2 {
	return r.Max.Sub(r.Min)
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

// Outset grows the rectangle by d on every side.
func (r Rect) Outset(d float32) Rect {
	return Rect{
		Min: Vec2{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Vec2{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		Min: Vec2{X: math32.Min(r.Min.X, s.Min.X), Y: math32.Min(r.Min.Y, s.Min.Y)},
		Max: Vec2{X: math32.Max(r.Max.X, s.Max.X), Y: math32.Max(r.Max.Y, s.Max.Y)},
	}
}

// Translate moves the rectangle by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// pixelBounds returns the integer pixel span [x0,x1)x[y0,y1) whose pixel
// centers may fall inside r, clipped to a w x h target.
func (r Rect) pixelBounds(w, h int) (x0, y0, x1, y1 int) {
	x0 = clampInt(int(math32.Floor(r.Min.X)), 0, w)
	y0 = clampInt(int(math32.Floor(r.Min.Y)), 0, h)
	x1 = clampInt(int(math32.Ceil(r.Max.X)), 0, w)
	y1 = clampInt(int(math32.Ceil(r.Max.Y)), 0, h)
	return x0, y0, x1, y1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float32) float32 {
	if !(v >= 0) { // also catches NaN
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// smoothstep is the GLSL/WGSL smoothstep. For e0 == e1 it degrades to a step.
func smoothstep(e0, e1, x float32) float32 {
	if e1 == e0 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// fract returns the fractional part of x in [0,1).
func fract(x float32) float32 {
	return x - math32.Floor(x)
}

package frost

// NewLinearGradientPixmap returns a w x h pixmap filled with a gradient
// from one color to another along the direction (dx, dy). It serves as an
// opaque backdrop for frosted components.
func NewLinearGradientPixmap(w, h int, from, to RGBA, dx, dy float32) *Pixmap {
	pm := NewPixmap(w, h)
	dir := Vec2{X: dx, Y: dy}
	l := dir.Length()
	if l == 0 {
		pm.Clear(from)
		return pm
	}
	dir = dir.Mul(1 / l)

	// Project the corners to find the gradient extent along dir.
	lo, hi := float32(0), float32(0)
	for _, c := range []Vec2{{X: float32(w)}, {Y: float32(h)}, {X: float32(w), Y: float32(h)}} {
		d := c.X*dir.X + c.Y*dir.Y
		lo, hi = min(lo, d), max(hi, d)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	for y := range h {
		for x := range w {
			d := (float32(x)+0.5)*dir.X + (float32(y)+0.5)*dir.Y
			t := clamp01((d - lo) / span)
			pm.SetPixel(x, y, from.Lerp(to, t).Premultiply())
		}
	}
	return pm
}

// NewRadialGradientPixmap returns a w x h pixmap with a gradient from one
// color at center to another at radius. center is in normalized target
// coordinates; radius is a fraction of the distance from center to the
// farthest corner, with zero or less meaning 1.
func NewRadialGradientPixmap(w, h int, from, to RGBA, center Vec2, radius float32) *Pixmap {
	pm := NewPixmap(w, h)
	c := Vec2{X: center.X * float32(w), Y: center.Y * float32(h)}

	var far float32
	for _, p := range []Vec2{{}, {X: float32(w)}, {Y: float32(h)}, {X: float32(w), Y: float32(h)}} {
		far = max(far, p.Sub(c).Length())
	}
	if radius <= 0 {
		radius = 1
	}
	reach := radius * far
	if reach == 0 {
		pm.Clear(from)
		return pm
	}

	for y := range h {
		for x := range w {
			d := Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}.Sub(c).Length()
			pm.SetPixel(x, y, from.Lerp(to, clamp01(d/reach)).Premultiply())
		}
	}
	return pm
}

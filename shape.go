package frost

import "github.com/chewxy/math32"

// Signed distances throughout this file are negative inside a shape, zero
// on its boundary and positive outside. Points are in pixel space unless a
// comment says otherwise.

// noClip is the clip distance reported when clipping is disabled.
const noClip = -math32.MaxFloat32

// BoxDistance returns the signed distance from p to an axis-aligned box
// centered at the origin with half-extent h.
func BoxDistance(p, h Vec2) float32 {
	d := p.Abs().Sub(h)
	return d.Max(Vec2{}).Length() + math32.Min(d.MaxElem(), 0)
}

// RoundedBoxDistance returns the signed distance from p to a box centered at
// the origin with half-extent h and one radius per corner. The radius of the
// quadrant containing p is used, clamped to the shorter half-extent, so an
// oversized radius yields a pill shape.
func RoundedBoxDistance(p, h Vec2, radii CornerRadii) float32 {
	h = h.Max(Vec2{})
	s := clampf(radii[quadrant(p)], 0, h.MinElem())
	return BoxDistance(p, h.Sub(Vec2{X: s, Y: s})) - s
}

// NotchProfile evaluates the trapezoidal notch profile at t, the distance
// along the edge from the notch center. It is 1 within flat/2, 0 beyond
// total/2 and eases smoothly in between.
func NotchProfile(t, flat, total float32) float32 {
	if total <= 0 {
		return 0
	}
	flat = clampf(flat, 0, total)
	return 1 - smoothstep(flat*0.5, total*0.5, math32.Abs(t))
}

// notchGeom is a notch resolved against a component: its edge, along-edge
// center (relative to the component center) and widths.
type notchGeom struct {
	edge   NotchEdge
	center float32
	flat   float32
	total  float32
}

// resolveNotch anchors n on the nominal half-extent h. Outer, inner and
// shadow shapes share the result, so the recess lines up across them.
func resolveNotch(n Notch, h Vec2) notchGeom {
	g := notchGeom{edge: n.Edge, flat: n.FlatWidth, total: n.TotalWidth}
	if !n.Active() {
		g.edge = NotchNone
		return g
	}
	extent := h.X
	if n.Edge == NotchLeft || n.Edge == NotchRight {
		extent = h.Y
	}
	switch n.Anchor {
	case NotchStart:
		g.center = -extent + n.TotalWidth*0.5 + n.Offset
	case NotchEnd:
		g.center = extent - n.TotalWidth*0.5 + n.Offset
	default:
		g.center = n.Offset
	}
	return g
}

// distance returns the signed distance to the edge line of a box with
// half-extent h, displaced inward by depth times the profile. p is relative
// to the component center.
func (g *notchGeom) distance(p, h Vec2, depth float32) float32 {
	switch g.edge {
	case NotchTop:
		return (-h.Y + depth*NotchProfile(p.X-g.center, g.flat, g.total)) - p.Y
	case NotchRight:
		return p.X - (h.X - depth*NotchProfile(p.Y-g.center, g.flat, g.total))
	case NotchBottom:
		return p.Y - (h.Y - depth*NotchProfile(p.X-g.center, g.flat, g.total))
	case NotchLeft:
		return (-h.X + depth*NotchProfile(p.Y-g.center, g.flat, g.total)) - p.X
	default:
		return -math32.MaxFloat32
	}
}

// Shape holds the geometry derived from a ParameterBlock: the outer,
// content, shadow and clip shapes. It is computed once per draw and is
// safe for concurrent use.
type Shape struct {
	center Vec2
	half   Vec2

	outerHalf  Vec2
	outerRadii CornerRadii
	innerHalf  Vec2
	innerRadii CornerRadii
	radii      CornerRadii

	notch      notchGeom
	depth      float32
	innerDepth float32

	shadowOffset Vec2

	clipX, clipY bool
	clipCenter   Vec2
	clipHalf     Vec2
	clipRadii    CornerRadii
}

// NewShape derives the shape geometry for b.
func NewShape(b *ParameterBlock) Shape {
	half := b.Size.Mul(0.5)
	s := Shape{
		center:       b.Position.Add(half),
		half:         half,
		radii:        b.Radii,
		shadowOffset: b.ShadowOffset,
		clipX:        b.ClipX,
		clipY:        b.ClipY,
		clipCenter:   b.ClipBounds.Center(),
		clipHalf:     b.ClipBounds.Size().Mul(0.5),
		clipRadii:    b.ClipRadii,
	}

	expand, inset := b.BorderPosition.expandInset(b.BorderWidth)
	s.outerHalf = half.Add(Vec2{X: expand, Y: expand})
	s.innerHalf = half.Sub(Vec2{X: inset, Y: inset}).Max(Vec2{})
	for i, r := range b.Radii {
		if r > 0 {
			s.outerRadii[i] = r + expand
		}
		s.innerRadii[i] = nonNeg(r - inset)
	}

	s.notch = resolveNotch(b.Notch, half)
	if s.notch.edge != NotchNone {
		s.depth = b.Notch.Depth
		s.innerDepth = nonNeg(b.Notch.Depth - inset)
	}
	return s
}

// shapeDistance is the rounded box with the notch recess applied.
func (s *Shape) shapeDistance(local, h Vec2, radii CornerRadii, depth float32) float32 {
	d := RoundedBoxDistance(local, h, radii)
	if depth > 0 {
		d = math32.Max(d, s.notch.distance(local, h, depth))
	}
	return d
}

// Outer returns the distance to the border-expanded outline.
func (s *Shape) Outer(p Vec2) float32 {
	return s.shapeDistance(p.Sub(s.center), s.outerHalf, s.outerRadii, s.depth)
}

// Inner returns the distance to the content area outline.
func (s *Shape) Inner(p Vec2) float32 {
	return s.shapeDistance(p.Sub(s.center), s.innerHalf, s.innerRadii, s.innerDepth)
}

// Nominal returns the distance to the un-adjusted component outline.
func (s *Shape) Nominal(p Vec2) float32 {
	return s.shapeDistance(p.Sub(s.center), s.half, s.radii, s.depth)
}

// Shadow returns the distance to the shadow outline: the nominal outline
// moved by the shadow offset.
func (s *Shape) Shadow(p Vec2) float32 {
	return s.Nominal(p.Sub(s.shadowOffset))
}

// Clip returns the distance to the clip region. With both axes enabled the
// region is a rounded rectangle; with one axis it is a slab. Without
// clipping the result is a large negative number.
func (s *Shape) Clip(p Vec2) float32 {
	local := p.Sub(s.clipCenter)
	switch {
	case s.clipX && s.clipY:
		return RoundedBoxDistance(local, s.clipHalf, s.clipRadii)
	case s.clipX:
		return math32.Abs(local.X) - s.clipHalf.X
	case s.clipY:
		return math32.Abs(local.Y) - s.clipHalf.Y
	default:
		return noClip
	}
}

// ContentBox returns the content rectangle in pixel space. Image content is
// mapped onto it.
func (s *Shape) ContentBox() Rect {
	return Rect{Min: s.center.Sub(s.innerHalf), Max: s.center.Add(s.innerHalf)}
}

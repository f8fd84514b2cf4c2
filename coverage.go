package frost

import "github.com/chewxy/math32"

const (
	// minAAHalfWidth and maxAAHalfWidth bound the smoothstep half-width in
	// pixels. The lower bound keeps edges soft where the distance gradient
	// vanishes; the upper bound keeps them crisp under extreme scaling.
	minAAHalfWidth = 0.5
	maxAAHalfWidth = 2.0

	// clipRejectDistance is how far outside the clip region a pixel may be
	// before it is dropped.
	clipRejectDistance = 0.5

	// coverageEpsilon is the outer coverage below which only the shadow is
	// drawn. It is half an 8-bit step.
	coverageEpsilon = 1.0 / 512
)

// AAHalfWidth returns the smoothstep half-width for a distance whose local
// screen-space rate of change is fwidth.
func AAHalfWidth(fwidth float32) float32 {
	return clampf(fwidth*0.5, minAAHalfWidth, maxAAHalfWidth)
}

// Coverage converts a signed distance into anti-aliased coverage in [0, 1].
func Coverage(d, fwidth float32) float32 {
	w := AAHalfWidth(fwidth)
	return 1 - smoothstep(-w, w, d)
}

// ShadowCoverage is the soft falloff of a shadow: it fades over blur pixels
// centered on the shadow outline. Without blur it is plain AA coverage.
func ShadowCoverage(d, blur, fwidth float32) float32 {
	if blur <= 0 {
		return Coverage(d, fwidth)
	}
	return 1 - smoothstep(-blur*0.5, blur*0.5, d)
}

// Region classifies a pixel against the outer and content outlines.
type Region int

// Regions.
const (
	RegionOutside Region = iota
	RegionBorder
	RegionContent
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionBorder:
		return "border"
	case RegionContent:
		return "content"
	default:
		return "outside"
	}
}

// Classify returns the region for a pair of distances.
func Classify(outer, inner float32) Region {
	switch {
	case inner <= 0:
		return RegionContent
	case outer <= 0:
		return RegionBorder
	default:
		return RegionOutside
	}
}

// fwidth approximates the screen-space gradient length of d = dist(s, p)
// with central differences over one pixel. Central differences keep the
// estimate symmetric, so the four corners of a box anti-alias alike.
func fwidth(dist func(*Shape, Vec2) float32, s *Shape, p Vec2) float32 {
	dx := dist(s, Vec2{X: p.X + 1, Y: p.Y}) - dist(s, Vec2{X: p.X - 1, Y: p.Y})
	dy := dist(s, Vec2{X: p.X, Y: p.Y + 1}) - dist(s, Vec2{X: p.X, Y: p.Y - 1})
	return math32.Hypot(dx, dy) * 0.5
}

// Evaluator shades the pixels of one component. It is built once per draw
// from an immutable ParameterBlock and is safe for concurrent use.
type Evaluator struct {
	block   ParameterBlock
	shape   Shape
	content contentResolver
}

// NewEvaluator prepares b for shading. image is the bound image for
// ModeImage and backdrop the captured backdrop for ModeFrosted; either may
// be nil when the mode does not use it, in which case content resolves to
// transparent.
func NewEvaluator(b *ParameterBlock, image, backdrop Sampler) *Evaluator {
	e := &Evaluator{block: *b}
	e.shape = NewShape(&e.block)
	e.content = newContentResolver(&e.block, e.shape.ContentBox(), image, backdrop)
	return e
}

// Block returns the block the evaluator was built from.
func (e *Evaluator) Block() *ParameterBlock {
	return &e.block
}

// Shape returns the derived geometry.
func (e *Evaluator) Shape() *Shape {
	return &e.shape
}

// Classify returns the region of the pixel centered at p.
func (e *Evaluator) Classify(p Vec2) Region {
	return Classify(e.shape.Outer(p), e.shape.Inner(p))
}

// Shade returns the premultiplied color of the pixel centered at p, ready to
// be composited source-over. ok is false when the pixel is clipped away and
// nothing must be written.
func (e *Evaluator) Shade(p Vec2) (c RGBA, ok bool) {
	return e.shade(p, e.block.Has(HasBorder))
}

func (e *Evaluator) shade(p Vec2, borderPath bool) (RGBA, bool) {
	b := &e.block
	s := &e.shape

	if b.Has(HasClip) && s.Clip(p) > clipRejectDistance {
		return Transparent, false
	}

	var shadow RGBA
	if b.Has(HasShadow) {
		shadow = e.shadowLayer(p)
	}

	outer := s.Outer(p)
	outerCov := Coverage(outer, fwidth((*Shape).Outer, s, p))
	if outerCov < coverageEpsilon {
		return shadow.Scale(b.Opacity), true
	}

	var layer RGBA
	if borderPath {
		inner := s.Inner(p)
		innerCov := math32.Min(Coverage(inner, fwidth((*Shape).Inner, s, p)), outerCov)
		ring := clamp01(outerCov - innerCov)
		if innerCov >= coverageEpsilon {
			layer = e.content.at(p).Scale(innerCov)
		}
		layer = layer.Add(b.BorderColor.Premultiply().Scale(ring))
	} else {
		layer = e.content.at(p).Scale(outerCov)
	}

	return layer.Over(shadow).Scale(b.Opacity), true
}

// shadowLayer returns the premultiplied shadow color at p.
func (e *Evaluator) shadowLayer(p Vec2) RGBA {
	b := &e.block
	d := e.shape.Shadow(p)
	var fw float32
	if b.ShadowBlur <= 0 {
		fw = fwidth((*Shape).Shadow, &e.shape, p)
	}
	a := b.ShadowColor.A * ShadowCoverage(d, b.ShadowBlur, fw) * b.ShadowOpacity
	return b.ShadowColor.WithAlpha(a).Premultiply()
}

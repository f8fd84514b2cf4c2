package frost

import (
	"image"

	"github.com/chewxy/math32"
)

// Feature is a bit set of optional evaluation stages in a ParameterBlock.
type Feature uint32

// Feature bits. The values are part of the block layout.
const (
	HasBorder Feature = 1 << iota
	HasShadow
	HasClip
	HasNotch
)

// ParameterBlock is the per-draw style consumed by the shading core. It is
// built by NewParameterBlock, which clamps every field into a
// geometry-consistent range, and must not be modified while a draw that
// uses it is in flight. The exported fields mirror the binary layout
// written by MarshalBinary.
type ParameterBlock struct {
	// Color is the solid fill for ModeSolid and the tint for ModeFrosted.
	Color      RGBA
	Position   Vec2
	Size       Vec2
	Radii      CornerRadii
	ScreenSize Vec2

	Mode          ContentMode
	BlurRadius    float32
	Opacity       float32
	TintIntensity float32

	BorderWidth    float32
	BorderPosition BorderPosition
	BorderColor    RGBA

	ShadowColor   RGBA
	ShadowOffset  Vec2
	ShadowBlur    float32
	ShadowOpacity float32

	ClipBounds Rect
	ClipRadii  CornerRadii
	ClipX      bool
	ClipY      bool

	Notch Notch

	Flags Feature
}

// NewParameterBlock derives the block for c on a screen of the given size.
// For frosted content the glass opacity is folded into Opacity so that the
// compositor applies a single overall opacity.
func NewParameterBlock(c *VisualComponent, screen Vec2) ParameterBlock {
	b := ParameterBlock{
		Position:       c.Position,
		Size:           c.Size,
		Radii:          c.Radii,
		ScreenSize:     screen,
		Mode:           ModeOf(c.Content),
		Opacity:        c.Opacity,
		BorderWidth:    c.Border.Width,
		BorderPosition: c.Border.Position,
		BorderColor:    c.Border.Color,
		ShadowColor:    c.Shadow.Color,
		ShadowOffset:   c.Shadow.Offset,
		ShadowBlur:     c.Shadow.Blur,
		ShadowOpacity:  c.Shadow.Opacity,
		ClipBounds:     c.Clip.Bounds,
		ClipRadii:      c.Clip.Radii,
		ClipX:          c.Clip.EnabledX,
		ClipY:          c.Clip.EnabledY,
		Notch:          c.Notch,
	}

	switch content := c.Content.(type) {
	case Solid:
		b.Color = content.Color
	case FrostedGlass:
		b.Color = content.Tint
		b.TintIntensity = content.TintIntensity
		b.BlurRadius = content.BlurRadius
		b.Opacity *= clamp01(content.Opacity)
	case Image:
		b.Color = White
	}

	b.sanitize()
	return b
}

// sanitize clamps every field into its valid range and recomputes Flags.
// It is idempotent.
func (b *ParameterBlock) sanitize() {
	b.Size = b.Size.Max(Vec2{})
	half := b.Size.MinElem() * 0.5

	b.Radii = b.Radii.clamped(half)
	b.ScreenSize = b.ScreenSize.Max(Vec2{X: 1, Y: 1})
	if b.Mode > ModeFrosted {
		b.Mode = ModeSolid
	}
	b.BlurRadius = nonNeg(b.BlurRadius)
	b.Opacity = clamp01(b.Opacity)
	b.TintIntensity = clamp01(b.TintIntensity)
	b.Color = b.Color.Clamp()

	b.BorderWidth = clampf(b.BorderWidth, 0, half)
	if b.BorderPosition > BorderOutside {
		b.BorderPosition = BorderInside
	}
	b.BorderColor = b.BorderColor.Clamp()

	b.ShadowColor = b.ShadowColor.Clamp()
	b.ShadowBlur = nonNeg(b.ShadowBlur)
	b.ShadowOpacity = clamp01(b.ShadowOpacity)

	cb := b.ClipBounds
	b.ClipBounds = Rect{
		Min: Vec2{X: math32.Min(cb.Min.X, cb.Max.X), Y: math32.Min(cb.Min.Y, cb.Max.Y)},
		Max: Vec2{X: math32.Max(cb.Min.X, cb.Max.X), Y: math32.Max(cb.Min.Y, cb.Max.Y)},
	}
	b.ClipRadii = b.ClipRadii.clamped(b.ClipBounds.Size().MinElem() * 0.5)

	n := &b.Notch
	if n.Edge > NotchLeft {
		n.Edge = NotchNone
	}
	n.TotalWidth = nonNeg(n.TotalWidth)
	n.FlatWidth = clampf(n.FlatWidth, 0, n.TotalWidth)
	depthLimit := b.Size.Y
	if n.Edge == NotchLeft || n.Edge == NotchRight {
		depthLimit = b.Size.X
	}
	n.Depth = clampf(n.Depth, 0, depthLimit)
	if n.Anchor > NotchEnd {
		n.Anchor = NotchCenter
	}
	if isNaN(n.Offset) {
		n.Offset = 0
	}

	b.Flags = 0
	if b.BorderWidth > 0 {
		b.Flags |= HasBorder
	}
	if b.ShadowColor.A > 0 && b.ShadowOpacity > 0 {
		b.Flags |= HasShadow
	}
	if b.ClipX || b.ClipY {
		b.Flags |= HasClip
	}
	if n.Active() {
		b.Flags |= HasNotch
	}
}

// Has reports whether the feature bit is set.
func (b *ParameterBlock) Has(f Feature) bool {
	return b.Flags&f != 0
}

// Bounds returns the nominal component rectangle.
func (b *ParameterBlock) Bounds() Rect {
	return Rect{Min: b.Position, Max: b.Position.Add(b.Size)}
}

// OuterBounds returns the rectangle covering the border-expanded shape.
func (b *ParameterBlock) OuterBounds() Rect {
	expand, _ := b.BorderPosition.expandInset(b.BorderWidth)
	return b.Bounds().Outset(expand)
}

// DrawBounds returns the rectangle of every pixel the block can touch:
// the outer shape, its shadow and the anti-aliasing margin. With clipping
// on both axes the result is further limited to the clip rectangle.
func (b *ParameterBlock) DrawBounds() Rect {
	r := b.OuterBounds()
	if b.Has(HasShadow) {
		sh := b.Bounds().Translate(b.ShadowOffset).Outset(b.ShadowBlur * 0.5)
		r = r.Union(sh)
	}
	r = r.Outset(maxAAHalfWidth)
	if b.ClipX {
		r.Min.X = math32.Max(r.Min.X, b.ClipBounds.Min.X-clipRejectDistance)
		r.Max.X = math32.Min(r.Max.X, b.ClipBounds.Max.X+clipRejectDistance)
	}
	if b.ClipY {
		r.Min.Y = math32.Max(r.Min.Y, b.ClipBounds.Min.Y-clipRejectDistance)
		r.Max.Y = math32.Min(r.Max.Y, b.ClipBounds.Max.Y+clipRejectDistance)
	}
	return r
}

// PixelBounds returns DrawBounds rounded out to whole pixels and clamped to
// a w x h target. The result is empty when the block draws nothing there.
func (b *ParameterBlock) PixelBounds(w, h int) image.Rectangle {
	x0, y0, x1, y1 := b.DrawBounds().pixelBounds(w, h)
	if x0 >= x1 || y0 >= y1 {
		return image.Rectangle{}
	}
	return image.Rect(x0, y0, x1, y1)
}

func nonNeg(v float32) float32 {
	if v > 0 {
		return v
	}
	return 0
}

func isNaN(v float32) bool {
	return v != v
}

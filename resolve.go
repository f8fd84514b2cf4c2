package frost

// frostedSaturation is the saturation boost applied to frosted content.
const frostedSaturation = 1.05

// contentResolver produces the premultiplied content color of a component.
type contentResolver struct {
	mode  ContentMode
	color RGBA // premultiplied solid color

	image Sampler
	box   Rect

	backdrop   Sampler
	kernel     *BlurKernel
	screen     Vec2
	texel      Vec2
	tint       RGBA
	tintWeight float32
}

func newContentResolver(b *ParameterBlock, box Rect, image, backdrop Sampler) contentResolver {
	r := contentResolver{
		mode:  b.Mode,
		color: b.Color.Premultiply(),
		image: image,
		box:   box,
	}
	if b.Mode == ModeFrosted {
		r.backdrop = backdrop
		r.kernel = NewBlurKernel(b.BlurRadius)
		r.screen = b.ScreenSize
		r.texel = Vec2{X: 1 / b.ScreenSize.X, Y: 1 / b.ScreenSize.Y}
		r.tint = b.Color
		r.tintWeight = FrostedTintWeight(b)
	}
	return r
}

// FrostedTintWeight returns the weight with which the tint color is mixed
// into the blurred backdrop.
func FrostedTintWeight(b *ParameterBlock) float32 {
	return clamp01(b.Color.A * b.TintIntensity * b.Opacity)
}

// at returns the premultiplied content color at pixel center p.
func (r *contentResolver) at(p Vec2) RGBA {
	switch r.mode {
	case ModeImage:
		if r.image == nil {
			return Transparent
		}
		size := r.box.Size()
		var uv Vec2
		if size.X > 0 {
			uv.X = (p.X - r.box.Min.X) / size.X
		}
		if size.Y > 0 {
			uv.Y = (p.Y - r.box.Min.Y) / size.Y
		}
		return r.image.Sample(uv.X, uv.Y)
	case ModeFrosted:
		if r.backdrop == nil {
			return Transparent
		}
		uv := Vec2{X: p.X / r.screen.X, Y: p.Y / r.screen.Y}
		blurred := r.kernel.Sample(r.backdrop, uv, r.texel).Unpremultiply()
		return frostedColor(blurred, r.tint, r.tintWeight)
	default:
		return r.color
	}
}

// frostedColor mixes the tint into a straight backdrop color and boosts
// saturation around the Rec. 709 luma. The result is opaque; transparency
// comes from the component opacity alone.
func frostedColor(backdrop, tint RGBA, weight float32) RGBA {
	c := RGBA{
		R: backdrop.R + (tint.R-backdrop.R)*weight,
		G: backdrop.G + (tint.G-backdrop.G)*weight,
		B: backdrop.B + (tint.B-backdrop.B)*weight,
	}
	l := c.Luminance()
	return RGBA{
		R: clamp01(l + (c.R-l)*frostedSaturation),
		G: clamp01(l + (c.G-l)*frostedSaturation),
		B: clamp01(l + (c.B-l)*frostedSaturation),
		A: 1,
	}
}

// FrostedColor returns the opaque frosted content color for a backdrop
// color that has already been blurred.
func FrostedColor(backdrop RGBA, b *ParameterBlock) RGBA {
	return frostedColor(backdrop, b.Color, FrostedTintWeight(b))
}

package frost

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
)

// Pixmap is a rectangular buffer of premultiplied RGBA8 pixels, the same
// memory layout as image.RGBA. It is the render target of the CPU renderer
// and the source type for image content and backdrops.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a transparent pixmap with the given dimensions.
// Negative dimensions are treated as zero.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 0), max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw premultiplied pixel data, 4 bytes per pixel, rows
// packed without padding.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Size returns the dimensions as a vector.
func (p *Pixmap) Size() Vec2 {
	return Vec2{X: float32(p.width), Y: float32(p.height)}
}

// Pixel returns the premultiplied color of a pixel. Out-of-range
// coordinates return Transparent.
func (p *Pixmap) Pixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: from8(p.data[i+0]),
		G: from8(p.data[i+1]),
		B: from8(p.data[i+2]),
		A: from8(p.data[i+3]),
	}
}

// SetPixel stores a premultiplied color.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = to8(c.R)
	p.data[i+1] = to8(c.G)
	p.data[i+2] = to8(c.B)
	p.data[i+3] = to8(c.A)
}

// blendPixel composites a premultiplied color source-over.
func (p *Pixmap) blendPixel(x, y int, src RGBA) {
	if src.A <= 0 && src.R <= 0 && src.G <= 0 && src.B <= 0 {
		return
	}
	i := (y*p.width + x) * 4
	inv := 1 - clamp01(src.A)
	d := p.data[i : i+4 : i+4]
	d[0] = to8(src.R + from8(d[0])*inv)
	d[1] = to8(src.G + from8(d[1])*inv)
	d[2] = to8(src.B + from8(d[2])*inv)
	d[3] = to8(src.A + from8(d[3])*inv)
}

// Clear fills the pixmap with a straight color.
func (p *Pixmap) Clear(c RGBA) {
	pc := c.Clamp().Premultiply()
	r, g, b, a := to8(pc.R), to8(pc.G), to8(pc.B), to8(pc.A)
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Clone returns a deep copy.
func (p *Pixmap) Clone() *Pixmap {
	c := &Pixmap{width: p.width, height: p.height, data: make([]uint8, len(p.data))}
	copy(c.data, p.data)
	return c
}

// CopyFrom copies src into p. The dimensions must match.
func (p *Pixmap) CopyFrom(src *Pixmap) error {
	if src.width != p.width || src.height != p.height {
		return fmt.Errorf("frost: copy %dx%d pixmap into %dx%d", src.width, src.height, p.width, p.height)
	}
	copy(p.data, src.data)
	return nil
}

// Crop copies the pixels inside r (clipped to the pixmap) into a new pixmap.
func (p *Pixmap) Crop(r image.Rectangle) *Pixmap {
	r = r.Intersect(p.Bounds())
	out := NewPixmap(r.Dx(), r.Dy())
	for y := 0; y < out.height; y++ {
		src := ((r.Min.Y+y)*p.width + r.Min.X) * 4
		copy(out.data[y*out.width*4:(y+1)*out.width*4], p.data[src:src+out.width*4])
	}
	return out
}

// Sample implements Sampler with bilinear filtering and clamp-to-edge
// addressing. u and v are normalized, pixel centers sit at (i+0.5)/size.
func (p *Pixmap) Sample(u, v float32) RGBA {
	if p.width == 0 || p.height == 0 {
		return Transparent
	}
	fx := u*float32(p.width) - 0.5
	fy := v*float32(p.height) - 0.5

	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	x1 := clampInt(x0+1, 0, p.width-1)
	y1 := clampInt(y0+1, 0, p.height-1)
	x0 = clampInt(x0, 0, p.width-1)
	y0 = clampInt(y0, 0, p.height-1)

	c00 := p.Pixel(x0, y0)
	c10 := p.Pixel(x1, y0)
	c01 := p.Pixel(x0, y1)
	c11 := p.Pixel(x1, y1)

	top := c00.Lerp(c10, tx)
	bottom := c01.Lerp(c11, tx)
	return top.Lerp(bottom, ty)
}

// Nearest returns a Sampler over p that uses nearest-neighbor filtering.
// It suits pixel art shown at its native size.
func (p *Pixmap) Nearest() Sampler {
	return nearestSampler{p}
}

type nearestSampler struct {
	p *Pixmap
}

func (s nearestSampler) Sample(u, v float32) RGBA {
	x := clampInt(int(math32.Floor(u*float32(s.p.width))), 0, s.p.width-1)
	y := clampInt(int(math32.Floor(v*float32(s.p.height))), 0, s.p.height-1)
	return s.p.Pixel(x, y)
}

// ToImage returns the pixmap as an image.RGBA sharing no memory with p.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage converts any image into a pixmap.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	pm := NewPixmap(b.Dx(), b.Dy())
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == b.Dx()*4 {
		copy(pm.data, rgba.Pix)
		return pm
	}
	dst := &image.RGBA{Pix: pm.data, Stride: pm.width * 4, Rect: image.Rect(0, 0, pm.width, pm.height)}
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return pm
}

// SavePNG writes the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.ToImage()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}

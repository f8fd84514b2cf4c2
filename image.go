package frost

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io"
	"os"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/webp" // register WebP decoding
)

// ScaleMode controls how an image is fitted into a content box.
type ScaleMode int

// Scale modes.
const (
	// ScaleStretch fills the box, ignoring the aspect ratio.
	ScaleStretch ScaleMode = iota
	// ScaleContain fits the whole image inside the box, letterboxed with
	// transparent pixels.
	ScaleContain
	// ScaleCover fills the box keeping the aspect ratio, cropping overflow.
	ScaleCover
	// ScaleOriginal keeps the native size, centered, with nearest filtering.
	ScaleOriginal
)

// String returns the mode name as used in scene files.
func (m ScaleMode) String() string {
	switch m {
	case ScaleContain:
		return "contain"
	case ScaleCover:
		return "cover"
	case ScaleOriginal:
		return "original"
	default:
		return "stretch"
	}
}

// ParseScaleMode parses a scale mode name.
func ParseScaleMode(s string) (ScaleMode, error) {
	switch s {
	case "", "stretch":
		return ScaleStretch, nil
	case "contain":
		return ScaleContain, nil
	case "cover":
		return ScaleCover, nil
	case "original":
		return ScaleOriginal, nil
	}
	return ScaleStretch, fmt.Errorf("frost: unknown scale mode %q", s)
}

// DecodeImage decodes a PNG, JPEG, BMP or WebP image into a pixmap.
func DecodeImage(r io.Reader) (*Pixmap, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	Logger().Debug("frost: image decoded", "format", format, "bounds", img.Bounds())
	return FromImage(img), nil
}

// LoadImage reads and decodes an image file.
func LoadImage(path string) (*Pixmap, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	pm, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pm, nil
}

// FitImage resamples src into a w x h pixmap according to mode, ready to be
// used as Image content on a content box of that size. Stretch, Contain and
// Cover use Catmull-Rom resampling; Original copies pixels unscaled.
func FitImage(src *Pixmap, w, h int, mode ScaleMode) *Pixmap {
	dst := NewPixmap(w, h)
	if w == 0 || h == 0 || src.Width() == 0 || src.Height() == 0 {
		return dst
	}
	dstImg := &image.RGBA{Pix: dst.data, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	srcImg := &image.RGBA{Pix: src.data, Stride: src.width * 4, Rect: src.Bounds()}

	sw, sh := float32(src.Width()), float32(src.Height())
	switch mode {
	case ScaleContain:
		s := math32.Min(float32(w)/sw, float32(h)/sh)
		draw.CatmullRom.Scale(dstImg, centered(sw*s, sh*s, w, h), srcImg, srcImg.Rect, draw.Src, nil)
	case ScaleCover:
		s := math32.Max(float32(w)/sw, float32(h)/sh)
		// Crop the source to the visible window, then scale it to fill.
		cw, ch := float32(w)/s, float32(h)/s
		crop := centered(cw, ch, src.Width(), src.Height())
		draw.CatmullRom.Scale(dstImg, dstImg.Rect, srcImg, crop, draw.Src, nil)
	case ScaleOriginal:
		r := centered(sw, sh, w, h)
		draw.Draw(dstImg, r, srcImg, image.Point{}, draw.Src)
	default:
		draw.CatmullRom.Scale(dstImg, dstImg.Rect, srcImg, srcImg.Rect, draw.Src, nil)
	}
	return dst
}

// ImageContent returns Image content for src fitted to a content box of
// w x h pixels. ScaleOriginal samples with nearest filtering.
func ImageContent(src *Pixmap, w, h int, mode ScaleMode) Image {
	fitted := FitImage(src, w, h, mode)
	if mode == ScaleOriginal {
		return Image{Source: fitted.Nearest()}
	}
	return Image{Source: fitted}
}

// centered returns a w x h rectangle centered in a bw x bh box.
func centered(w, h float32, bw, bh int) image.Rectangle {
	iw := int(w + 0.5)
	ih := int(h + 0.5)
	x := (bw - iw) / 2
	y := (bh - ih) / 2
	return image.Rect(x, y, x+iw, y+ih)
}

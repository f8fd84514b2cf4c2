package frost

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestParseScaleMode(t *testing.T) {
	for _, m := range []ScaleMode{ScaleStretch, ScaleContain, ScaleCover, ScaleOriginal} {
		got, err := ParseScaleMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseScaleMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if m, err := ParseScaleMode(""); err != nil || m != ScaleStretch {
		t.Errorf("empty mode = %v, %v", m, err)
	}
	if _, err := ParseScaleMode("tile"); err == nil {
		t.Error("unknown mode accepted")
	}
}

func TestDecodeImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(2, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	pm, err := DecodeImage(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if pm.Width() != 3 || pm.Height() != 2 {
		t.Fatalf("decoded %dx%d", pm.Width(), pm.Height())
	}
	if pm.Pixel(2, 1) != Red || pm.Pixel(0, 0) != Transparent {
		t.Errorf("decoded pixels wrong: %v %v", pm.Pixel(2, 1), pm.Pixel(0, 0))
	}

	if _, err := DecodeImage(strings.NewReader("not an image")); err == nil {
		t.Error("garbage decoded without error")
	}
	if _, err := LoadImage("testdata/does-not-exist.png"); err == nil {
		t.Error("missing file loaded without error")
	}
}

// opaqueBounds returns the bounding box of pixels with nonzero alpha.
func opaqueBounds(p *Pixmap) image.Rectangle {
	var r image.Rectangle
	for y := range p.Height() {
		for x := range p.Width() {
			if p.Pixel(x, y).A > 0 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestFitImage(t *testing.T) {
	src := NewPixmap(20, 10)
	src.Clear(Red)

	tests := []struct {
		mode ScaleMode
		want image.Rectangle
	}{
		{ScaleStretch, image.Rect(0, 0, 40, 40)},
		{ScaleContain, image.Rect(0, 10, 40, 30)},
		{ScaleCover, image.Rect(0, 0, 40, 40)},
		{ScaleOriginal, image.Rect(10, 15, 30, 25)},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			dst := FitImage(src, 40, 40, tt.mode)
			if dst.Width() != 40 || dst.Height() != 40 {
				t.Fatalf("size %dx%d", dst.Width(), dst.Height())
			}
			if got := opaqueBounds(dst); got != tt.want {
				t.Errorf("opaque bounds %v, want %v", got, tt.want)
			}
			if got := dst.Pixel(20, 20); !colorsNear(got, Red, 1.0/255) {
				t.Errorf("center = %v, want red", got)
			}
		})
	}

	if empty := FitImage(NewPixmap(0, 0), 4, 4, ScaleCover); opaqueBounds(empty) != (image.Rectangle{}) {
		t.Error("empty source produced pixels")
	}
}

func TestImageContent(t *testing.T) {
	src := NewPixmap(2, 2)
	src.Clear(Blue)

	if _, ok := ImageContent(src, 8, 8, ScaleOriginal).Source.(nearestSampler); !ok {
		t.Error("original mode should sample with nearest filtering")
	}
	if _, ok := ImageContent(src, 8, 8, ScaleCover).Source.(*Pixmap); !ok {
		t.Error("cover mode should sample the fitted pixmap")
	}
}

func TestNewLinearGradientPixmap(t *testing.T) {
	pm := NewLinearGradientPixmap(100, 10, Black, White, 1, 0)
	left, right := pm.Pixel(0, 5), pm.Pixel(99, 5)
	if left.R > 0.01 || right.R < 0.99 {
		t.Errorf("ends = %v, %v", left, right)
	}
	for x := 1; x < 100; x++ {
		if pm.Pixel(x, 5).R < pm.Pixel(x-1, 5).R {
			t.Fatalf("gradient decreases at x=%d", x)
		}
	}

	flat := NewLinearGradientPixmap(4, 4, Red, Blue, 0, 0)
	if flat.Pixel(3, 3) != Red {
		t.Errorf("zero direction = %v, want solid from color", flat.Pixel(3, 3))
	}
}

func TestNewRadialGradientPixmap(t *testing.T) {
	pm := NewRadialGradientPixmap(101, 101, Black, White, V2(0.5, 0.5), 0)
	if c := pm.Pixel(50, 50); c.R > 0.01 {
		t.Errorf("center = %v, want the from color", c)
	}
	if c := pm.Pixel(0, 0); c.R < 0.95 {
		t.Errorf("corner = %v, want nearly the to color", c)
	}
	if a, b := pm.Pixel(10, 50), pm.Pixel(90, 50); a != b {
		t.Errorf("not symmetric: %v vs %v", a, b)
	}
	for x := 51; x < 101; x++ {
		if pm.Pixel(x, 50).R < pm.Pixel(x-1, 50).R {
			t.Fatalf("gradient decreases at x=%d", x)
		}
	}

	half := NewRadialGradientPixmap(101, 101, Black, White, V2(0.5, 0.5), 0.5)
	if c := half.Pixel(100, 50); c != White {
		t.Errorf("beyond the radius = %v, want the to color", c)
	}

	corner := NewRadialGradientPixmap(10, 10, Red, Blue, V2(0, 0), 1)
	if c := corner.Pixel(0, 0); c.R < 0.9 {
		t.Errorf("offset center = %v, want red near the origin", c)
	}
}

package frost

import (
	"testing"
)

func TestAAHalfWidth(t *testing.T) {
	tests := []struct {
		fwidth, want float32
	}{
		{0, 0.5},
		{0.5, 0.5},
		{1, 0.5},
		{2, 1},
		{3, 1.5},
		{4, 2},
		{100, 2},
	}
	for _, tt := range tests {
		if got := AAHalfWidth(tt.fwidth); got != tt.want {
			t.Errorf("AAHalfWidth(%g) = %g, want %g", tt.fwidth, got, tt.want)
		}
	}
}

func TestCoverage(t *testing.T) {
	tests := []struct {
		name      string
		d, fwidth float32
		want      float32
	}{
		{"deep inside", -10, 1, 1},
		{"inner AA edge", -0.5, 1, 1},
		{"on boundary", 0, 1, 0.5},
		{"outer AA edge", 0.5, 1, 0},
		{"far outside", 10, 1, 0},
		{"wide AA inside", -1, 4, 0.84375},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Coverage(tt.d, tt.fwidth); !near(got, tt.want, 1e-6) {
				t.Errorf("Coverage(%g, %g) = %g, want %g", tt.d, tt.fwidth, got, tt.want)
			}
		})
	}
}

func TestCoverage_MonotonicAlongNormal(t *testing.T) {
	for _, fw := range []float32{0, 1, 2.5, 10} {
		prev := float32(2)
		for d := float32(-5); d <= 5; d += 0.05 {
			c := Coverage(d, fw)
			if c < 0 || c > 1 {
				t.Fatalf("fwidth %g: coverage(%g) = %g out of range", fw, d, c)
			}
			if c > prev {
				t.Fatalf("fwidth %g: coverage increases at d=%g", fw, d)
			}
			prev = c
		}
	}
}

func TestShadowCoverage(t *testing.T) {
	if got := ShadowCoverage(0, 8, 1); !near(got, 0.5, 1e-6) {
		t.Errorf("on outline: %g, want 0.5", got)
	}
	if got := ShadowCoverage(-4, 8, 1); got != 1 {
		t.Errorf("blur/2 inside: %g, want 1", got)
	}
	if got := ShadowCoverage(4, 8, 1); got != 0 {
		t.Errorf("blur/2 outside: %g, want 0", got)
	}
	// Without blur the shadow edge is an ordinary AA edge.
	if got, want := ShadowCoverage(0.25, 0, 1), Coverage(0.25, 1); got != want {
		t.Errorf("no blur: %g, want %g", got, want)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		outer, inner float32
		want         Region
	}{
		{-5, -1, RegionContent},
		{-5, 0, RegionContent},
		{-1, 2, RegionBorder},
		{0, 4, RegionBorder},
		{0.1, 4, RegionOutside},
	}
	for _, tt := range tests {
		if got := Classify(tt.outer, tt.inner); got != tt.want {
			t.Errorf("Classify(%g, %g) = %v, want %v", tt.outer, tt.inner, got, tt.want)
		}
	}
}

func newEvaluator(t *testing.T, c VisualComponent) *Evaluator {
	t.Helper()
	b := NewParameterBlock(&c, V2(300, 200))
	return NewEvaluator(&b, nil, nil)
}

func TestEvaluator_BorderPathMatchesPlainAtZeroWidth(t *testing.T) {
	c := NewComponent(20, 20, 120, 80, RGBA{R: 0.2, G: 0.6, B: 0.9, A: 0.8})
	c.Radii = CornerRadii{16, 4, 0, 30}
	c.Shadow = Shadow{Offset: V2(3, 5), Blur: 6, Opacity: 0.7, Color: Black}
	c.Notch = Notch{Edge: NotchBottom, Depth: 6, FlatWidth: 20, TotalWidth: 50, Anchor: NotchCenter}
	c.Opacity = 0.9
	c.Border = Border{Color: Red} // zero width
	e := newEvaluator(t, c)

	for y := 10; y < 115; y++ {
		for x := 10; x < 150; x++ {
			p := V2(float32(x)+0.5, float32(y)+0.5)
			a, okA := e.shade(p, true)
			b, okB := e.shade(p, false)
			if a != b || okA != okB {
				t.Fatalf("pixel (%d,%d): border path %v, plain path %v", x, y, a, b)
			}
		}
	}
}

func TestEvaluator_ClipRejects(t *testing.T) {
	c := NewComponent(0, 0, 100, 100, Red)
	c.Clip = Clip{Bounds: RectXYWH(0, 0, 50, 100), EnabledX: true}
	e := newEvaluator(t, c)

	if _, ok := e.Shade(V2(25.5, 50.5)); !ok {
		t.Error("pixel inside clip rejected")
	}
	if _, ok := e.Shade(V2(50.5, 50.5)); !ok {
		t.Error("pixel 0.5px past clip edge rejected")
	}
	if _, ok := e.Shade(V2(51.5, 50.5)); ok {
		t.Error("pixel 1.5px past clip edge not rejected")
	}
}

func TestEvaluator_Opacity(t *testing.T) {
	c := NewComponent(0, 0, 100, 100, Red)
	c.Opacity = 0.25
	e := newEvaluator(t, c)

	got, _ := e.Shade(V2(50.5, 50.5))
	want := RGBA{R: 0.25, A: 0.25}
	if got != want {
		t.Errorf("Shade = %v, want %v", got, want)
	}
}

func TestEvaluator_Shadow(t *testing.T) {
	c := NewComponent(10, 10, 50, 50, Transparent)
	c.Shadow = Shadow{Offset: V2(20, 20), Opacity: 0.5, Color: Black}
	e := newEvaluator(t, c)

	// Under the shadow, outside the component.
	got, ok := e.Shade(V2(70.5, 70.5))
	if !ok || !near(got.A, 0.5, 1e-6) || got.R != 0 {
		t.Errorf("shadow pixel = %v, want black at alpha 0.5", got)
	}
	// Outside both.
	if got, _ := e.Shade(V2(90.5, 20.5)); got != Transparent {
		t.Errorf("empty pixel = %v, want transparent", got)
	}

	c.Shadow.Blur = 10
	e = newEvaluator(t, c)
	// Exactly on the shadow outline (nominal right edge moved by 20).
	got, _ = e.Shade(V2(80, 50.5))
	if !near(got.A, 0.25, 1e-5) {
		t.Errorf("blurred shadow at outline alpha = %g, want 0.25", got.A)
	}
}

func TestEvaluator_ContentOverShadow(t *testing.T) {
	c := NewComponent(0, 0, 40, 40, Red.WithAlpha(0.5))
	c.Shadow = Shadow{Offset: V2(5, 5), Opacity: 1, Color: Blue}
	e := newEvaluator(t, c)

	got, _ := e.Shade(V2(20.5, 20.5))
	want := RGBA{R: 0.5, B: 0.5, A: 1}
	if !colorsNear(got, want, 1e-6) {
		t.Errorf("Shade = %v, want %v", got, want)
	}
}

func TestEvaluator_Classify(t *testing.T) {
	c := NewComponent(0, 0, 100, 60, Red)
	c.Border = Border{Width: 5, Position: BorderInside, Color: Blue}
	e := newEvaluator(t, c)

	tests := []struct {
		p    Vec2
		want Region
	}{
		{V2(50, 30), RegionContent},
		{V2(2, 30), RegionBorder},
		{V2(-2, 30), RegionOutside},
	}
	for _, tt := range tests {
		if got := e.Classify(tt.p); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestEvaluator_ImageContent(t *testing.T) {
	img := NewPixmap(2, 1)
	img.SetPixel(0, 0, Red)
	img.SetPixel(1, 0, Blue)

	c := NewComponent(0, 0, 100, 50, White)
	c.Content = Image{Source: img.Nearest()}
	b := NewParameterBlock(&c, V2(100, 50))
	e := NewEvaluator(&b, img.Nearest(), nil)

	if got, _ := e.Shade(V2(10.5, 25.5)); got != Red {
		t.Errorf("left half = %v, want red", got)
	}
	if got, _ := e.Shade(V2(90.5, 25.5)); got != Blue {
		t.Errorf("right half = %v, want blue", got)
	}

	// Unbound image resolves to transparent content.
	e = NewEvaluator(&b, nil, nil)
	if got, _ := e.Shade(V2(50.5, 25.5)); got != Transparent {
		t.Errorf("missing image = %v, want transparent", got)
	}
}

func colorsNear(a, b RGBA, tol float32) bool {
	return near(a.R, b.R, tol) && near(a.G, b.G, tol) && near(a.B, b.B, tol) && near(a.A, b.A, tol)
}

package frost

import (
	"encoding/binary"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/chewxy/math32"
)

func TestNewParameterBlock_Clamps(t *testing.T) {
	c := VisualComponent{
		Position: V2(10, 20),
		Size:     V2(100, 40),
		Radii:    CornerRadii{-5, 8, 50, 1000},
		Border:   Border{Width: 30, Position: BorderPosition(7), Color: RGBA{R: 2, G: -1, B: 0.5, A: 1}},
		Shadow:   Shadow{Blur: -4, Opacity: 3, Color: Black},
		Clip:     Clip{Bounds: Rect{Min: V2(50, 60), Max: V2(0, 0)}, Radii: Uniform(100), EnabledX: true},
		Notch:    Notch{Edge: NotchTop, Depth: 500, FlatWidth: 90, TotalWidth: 60, Offset: math32.NaN(), Anchor: NotchAnchor(9)},
		Content:  Solid{Color: Red},
		Opacity:  1.5,
	}
	b := NewParameterBlock(&c, V2(0, -10))

	if want := (CornerRadii{0, 8, 20, 20}); b.Radii != want {
		t.Errorf("Radii = %v, want %v", b.Radii, want)
	}
	if b.ScreenSize != V2(1, 1) {
		t.Errorf("ScreenSize = %v, want (1,1)", b.ScreenSize)
	}
	if b.Opacity != 1 {
		t.Errorf("Opacity = %g, want 1", b.Opacity)
	}
	if b.BorderWidth != 20 {
		t.Errorf("BorderWidth = %g, want 20 (half the short side)", b.BorderWidth)
	}
	if b.BorderPosition != BorderInside {
		t.Errorf("BorderPosition = %v, want inside", b.BorderPosition)
	}
	if want := (RGBA{R: 1, G: 0, B: 0.5, A: 1}); b.BorderColor != want {
		t.Errorf("BorderColor = %v, want %v", b.BorderColor, want)
	}
	if b.ShadowBlur != 0 || b.ShadowOpacity != 1 {
		t.Errorf("shadow blur/opacity = %g/%g, want 0/1", b.ShadowBlur, b.ShadowOpacity)
	}
	if want := (Rect{Min: V2(0, 0), Max: V2(50, 60)}); b.ClipBounds != want {
		t.Errorf("ClipBounds = %v, want %v", b.ClipBounds, want)
	}
	if b.ClipRadii != Uniform(25) {
		t.Errorf("ClipRadii = %v, want 25 each", b.ClipRadii)
	}
	n := b.Notch
	if n.Depth != 40 || n.FlatWidth != 60 || n.TotalWidth != 60 || n.Offset != 0 || n.Anchor != NotchCenter {
		t.Errorf("Notch = %+v", n)
	}
	if want := HasBorder | HasShadow | HasClip | HasNotch; b.Flags != want {
		t.Errorf("Flags = %b, want %b", b.Flags, want)
	}
}

func TestNewParameterBlock_Flags(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*VisualComponent)
		want   Feature
	}{
		{"plain", func(*VisualComponent) {}, 0},
		{"border", func(c *VisualComponent) { c.Border.Width = 2 }, HasBorder},
		{"zero width border", func(c *VisualComponent) { c.Border = Border{Color: Blue} }, 0},
		{"shadow", func(c *VisualComponent) { c.Shadow = Shadow{Color: Black, Opacity: 0.5} }, HasShadow},
		{"shadow without opacity", func(c *VisualComponent) { c.Shadow = Shadow{Color: Black} }, 0},
		{"transparent shadow", func(c *VisualComponent) { c.Shadow = Shadow{Color: Transparent, Opacity: 1} }, 0},
		{"clip y", func(c *VisualComponent) { c.Clip.EnabledY = true }, HasClip},
		{"notch", func(c *VisualComponent) { c.Notch = Notch{Edge: NotchLeft, Depth: 3, TotalWidth: 10} }, HasNotch},
		{"notch without depth", func(c *VisualComponent) { c.Notch = Notch{Edge: NotchLeft, TotalWidth: 10} }, 0},
		{"notch without edge", func(c *VisualComponent) { c.Notch = Notch{Depth: 3, TotalWidth: 10} }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComponent(0, 0, 50, 50, Red)
			tt.modify(&c)
			b := NewParameterBlock(&c, V2(100, 100))
			if b.Flags != tt.want {
				t.Errorf("Flags = %04b, want %04b", b.Flags, tt.want)
			}
		})
	}
}

func TestNewParameterBlock_Content(t *testing.T) {
	c := NewComponent(0, 0, 50, 50, Red)
	c.Opacity = 0.8
	c.Content = FrostedGlass{Tint: RGBA{R: 1, G: 1, B: 1, A: 0.5}, TintIntensity: 0.4, BlurRadius: 12, Opacity: 0.5}
	b := NewParameterBlock(&c, V2(100, 100))

	if b.Mode != ModeFrosted {
		t.Fatalf("Mode = %v, want frosted", b.Mode)
	}
	if !near(b.Opacity, 0.4, 1e-6) {
		t.Errorf("Opacity = %g, want component x glass opacity 0.4", b.Opacity)
	}
	if b.BlurRadius != 12 || b.TintIntensity != 0.4 || b.Color.A != 0.5 {
		t.Errorf("frosted fields not carried: %+v", b)
	}
	if w := FrostedTintWeight(&b); !near(w, 0.5*0.4*0.4, 1e-6) {
		t.Errorf("FrostedTintWeight = %g, want 0.08", w)
	}

	c.Content = Image{Source: NewPixmap(1, 1)}
	b = NewParameterBlock(&c, V2(100, 100))
	if b.Mode != ModeImage || b.Color != White {
		t.Errorf("image block: mode %v color %v", b.Mode, b.Color)
	}
}

func TestParameterBlock_DrawBounds(t *testing.T) {
	c := NewComponent(10, 10, 100, 50, Red)
	c.Border = Border{Width: 4, Position: BorderOutside}
	b := NewParameterBlock(&c, V2(300, 300))
	want := Rect{Min: V2(4, 4), Max: V2(116, 66)}
	if got := b.DrawBounds(); got != want {
		t.Errorf("DrawBounds = %v, want %v", got, want)
	}

	c.Shadow = Shadow{Offset: V2(20, 30), Blur: 10, Color: Black, Opacity: 1}
	b = NewParameterBlock(&c, V2(300, 300))
	want = Rect{Min: V2(4, 4), Max: V2(137, 97)}
	if got := b.DrawBounds(); got != want {
		t.Errorf("DrawBounds with shadow = %v, want %v", got, want)
	}

	c.Clip = Clip{Bounds: RectXYWH(0, 0, 50, 300), EnabledX: true}
	b = NewParameterBlock(&c, V2(300, 300))
	want = Rect{Min: V2(4, 4), Max: V2(50.5, 97)}
	if got := b.DrawBounds(); got != want {
		t.Errorf("DrawBounds with clip = %v, want %v", got, want)
	}
}

func TestParameterBlock_PixelBounds(t *testing.T) {
	c := NewComponent(10, 10, 100, 50, Red)
	c.Border = Border{Width: 4, Position: BorderOutside}
	b := NewParameterBlock(&c, V2(100, 60))

	tests := []struct {
		name string
		w, h int
		want image.Rectangle
	}{
		{"inside", 300, 300, image.Rect(4, 4, 116, 66)},
		{"clamped", 100, 60, image.Rect(4, 4, 100, 60)},
		{"outside", 3, 3, image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.PixelBounds(tt.w, tt.h); got != tt.want {
				t.Errorf("PixelBounds(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestParameterBlock_Layout(t *testing.T) {
	c := NewComponent(12, 34, 200, 100, RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1})
	c.Radii = CornerRadii{1, 2, 3, 4}
	c.Border = Border{Width: 6, Position: BorderOutside, Color: Blue}
	c.Shadow = Shadow{Offset: V2(-3, 5), Blur: 7, Opacity: 0.5, Color: Black}
	c.Clip = Clip{Bounds: RectXYWH(0, 0, 150, 80), EnabledY: true}
	c.Notch = Notch{Edge: NotchRight, Depth: 5, FlatWidth: 10, TotalWidth: 30, Offset: -2, Anchor: NotchEnd}
	b := NewParameterBlock(&c, V2(640, 480))

	data, err := b.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != BlockSize {
		t.Fatalf("encoded %d bytes, want %d", len(data), BlockSize)
	}

	f32 := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(data[off:])) }
	u32 := func(off int) uint32 { return binary.LittleEndian.Uint32(data[off:]) }

	tests := []struct {
		name string
		got  float32
		want float32
	}{
		{"color.g", f32(4), 0.5},
		{"position.y", f32(20), 34},
		{"size.x", f32(24), 200},
		{"radius bottom-right", f32(44), 4},
		{"screen.y", f32(52), 480},
		{"opacity", f32(64), 1},
		{"border width", f32(72), 6},
		{"border color.b", f32(88), 1},
		{"shadow color.a", f32(108), 1},
		{"shadow offset.x", f32(112), -3},
		{"shadow blur", f32(120), 7},
		{"shadow opacity", f32(124), 0.5},
		{"clip max.x", f32(136), 150},
		{"clip x", f32(160), 0},
		{"clip y", f32(164), 1},
		{"notch depth", f32(172), 5},
		{"notch total", f32(180), 30},
		{"notch offset", f32(184), -2},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %g, want %g", tt.name, tt.got, tt.want)
		}
	}

	if got := u32(76); got != uint32(BorderOutside) {
		t.Errorf("border position = %d", got)
	}
	if got := u32(168); got != uint32(NotchRight) {
		t.Errorf("notch edge = %d", got)
	}
	if got := u32(188); got != uint32(NotchEnd) {
		t.Errorf("notch anchor = %d", got)
	}
	if got, want := u32(192), uint32(HasBorder|HasShadow|HasClip|HasNotch); got != want {
		t.Errorf("flags = %b, want %b", got, want)
	}
	for i := 196; i < BlockSize; i++ {
		if data[i] != 0 {
			t.Fatalf("padding byte %d = %d", i, data[i])
		}
	}

	var decoded ParameterBlock
	if err := decoded.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if decoded != b {
		t.Errorf("decoded block differs:\n got %+v\nwant %+v", decoded, b)
	}
}

func TestParameterBlock_AppendBinary(t *testing.T) {
	c := NewComponent(0, 0, 10, 10, Red)
	b := NewParameterBlock(&c, V2(10, 10))

	prefix := []byte{0xde, 0xad}
	out, err := b.AppendBinary(prefix)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2+BlockSize || out[0] != 0xde || out[1] != 0xad {
		t.Fatalf("AppendBinary returned %d bytes starting %x", len(out), out[:2])
	}
}

func TestParameterBlock_UnmarshalErrors(t *testing.T) {
	var b ParameterBlock
	for _, n := range []int{0, BlockSize - 1, BlockSize + 16} {
		if err := b.UnmarshalBinary(make([]byte, n)); !errors.Is(err, ErrBlockSize) {
			t.Errorf("%d bytes: err = %v, want ErrBlockSize", n, err)
		}
	}
}

func TestParameterBlock_UnmarshalSanitizes(t *testing.T) {
	data := make([]byte, BlockSize)
	// Unknown mode and notch edge, negative opacity, NaN shadow opacity and
	// flags that do not match the fields.
	binary.LittleEndian.PutUint32(data[56:], 42)
	binary.LittleEndian.PutUint32(data[64:], math.Float32bits(-3))
	binary.LittleEndian.PutUint32(data[124:], math.Float32bits(float32(math.NaN())))
	binary.LittleEndian.PutUint32(data[168:], 99)
	binary.LittleEndian.PutUint32(data[192:], 0xffffffff)

	var b ParameterBlock
	if err := b.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if b.Mode != ModeSolid {
		t.Errorf("Mode = %v, want solid", b.Mode)
	}
	if b.Opacity != 0 || b.ShadowOpacity != 0 {
		t.Errorf("opacity %g shadow opacity %g, want 0", b.Opacity, b.ShadowOpacity)
	}
	if b.Notch.Edge != NotchNone {
		t.Errorf("notch edge = %v, want none", b.Notch.Edge)
	}
	if b.Flags != 0 {
		t.Errorf("Flags = %b, want recomputed 0", b.Flags)
	}
}

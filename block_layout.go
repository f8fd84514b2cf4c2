package frost

import (
	"encoding/binary"
	"fmt"
	"math"
)

// BlockSize is the size in bytes of an encoded ParameterBlock. The layout
// follows WGSL uniform alignment: vec4 fields on 16-byte boundaries, vec2 on
// 8, scalars on 4, total rounded up to 16.
const BlockSize = 208

// Byte offsets of the encoded block fields.
const (
	offColor          = 0
	offPosition       = 16
	offSize           = 24
	offRadii          = 32
	offScreenSize     = 48
	offMode           = 56
	offBlurRadius     = 60
	offOpacity        = 64
	offTintIntensity  = 68
	offBorderWidth    = 72
	offBorderPosition = 76
	offBorderColor    = 80
	offShadowColor    = 96
	offShadowOffset   = 112
	offShadowBlur     = 120
	offShadowOpacity  = 124
	offClipBounds     = 128
	offClipRadii      = 144
	offClipEnabled    = 160
	offNotchEdge      = 168
	offNotchDepth     = 172
	offNotchFlat      = 176
	offNotchTotal     = 180
	offNotchOffset    = 184
	offNotchAnchor    = 188
	offFlags          = 192
)

// MarshalBinary encodes the block into its fixed little-endian layout.
func (b *ParameterBlock) MarshalBinary() ([]byte, error) {
	return b.AppendBinary(make([]byte, 0, BlockSize))
}

// AppendBinary appends the encoded block to dst.
func (b *ParameterBlock) AppendBinary(dst []byte) ([]byte, error) {
	start := len(dst)
	dst = append(dst, make([]byte, BlockSize)...)
	buf := dst[start:]

	putColor(buf[offColor:], b.Color)
	putVec2(buf[offPosition:], b.Position)
	putVec2(buf[offSize:], b.Size)
	for i, r := range b.Radii {
		putF32(buf[offRadii+4*i:], r)
	}
	putVec2(buf[offScreenSize:], b.ScreenSize)
	binary.LittleEndian.PutUint32(buf[offMode:], uint32(b.Mode))
	putF32(buf[offBlurRadius:], b.BlurRadius)
	putF32(buf[offOpacity:], b.Opacity)
	putF32(buf[offTintIntensity:], b.TintIntensity)

	putF32(buf[offBorderWidth:], b.BorderWidth)
	binary.LittleEndian.PutUint32(buf[offBorderPosition:], uint32(b.BorderPosition))
	putColor(buf[offBorderColor:], b.BorderColor)

	putColor(buf[offShadowColor:], b.ShadowColor)
	putVec2(buf[offShadowOffset:], b.ShadowOffset)
	putF32(buf[offShadowBlur:], b.ShadowBlur)
	putF32(buf[offShadowOpacity:], b.ShadowOpacity)

	putVec2(buf[offClipBounds:], b.ClipBounds.Min)
	putVec2(buf[offClipBounds+8:], b.ClipBounds.Max)
	for i, r := range b.ClipRadii {
		putF32(buf[offClipRadii+4*i:], r)
	}
	putF32(buf[offClipEnabled:], boolF32(b.ClipX))
	putF32(buf[offClipEnabled+4:], boolF32(b.ClipY))

	binary.LittleEndian.PutUint32(buf[offNotchEdge:], uint32(b.Notch.Edge))
	putF32(buf[offNotchDepth:], b.Notch.Depth)
	putF32(buf[offNotchFlat:], b.Notch.FlatWidth)
	putF32(buf[offNotchTotal:], b.Notch.TotalWidth)
	putF32(buf[offNotchOffset:], b.Notch.Offset)
	binary.LittleEndian.PutUint32(buf[offNotchAnchor:], uint32(b.Notch.Anchor))

	binary.LittleEndian.PutUint32(buf[offFlags:], uint32(b.Flags))
	return dst, nil
}

// UnmarshalBinary decodes a block written by MarshalBinary. The decoded
// block is clamped the same way NewParameterBlock clamps, so a corrupted
// buffer still yields a block the evaluator can consume.
func (b *ParameterBlock) UnmarshalBinary(data []byte) error {
	if len(data) != BlockSize {
		return fmt.Errorf("decode parameter block: got %d bytes, want %d: %w", len(data), BlockSize, ErrBlockSize)
	}

	b.Color = getColor(data[offColor:])
	b.Position = getVec2(data[offPosition:])
	b.Size = getVec2(data[offSize:])
	for i := range b.Radii {
		b.Radii[i] = getF32(data[offRadii+4*i:])
	}
	b.ScreenSize = getVec2(data[offScreenSize:])
	b.Mode = ContentMode(binary.LittleEndian.Uint32(data[offMode:]))
	b.BlurRadius = getF32(data[offBlurRadius:])
	b.Opacity = getF32(data[offOpacity:])
	b.TintIntensity = getF32(data[offTintIntensity:])

	b.BorderWidth = getF32(data[offBorderWidth:])
	b.BorderPosition = BorderPosition(binary.LittleEndian.Uint32(data[offBorderPosition:]))
	b.BorderColor = getColor(data[offBorderColor:])

	b.ShadowColor = getColor(data[offShadowColor:])
	b.ShadowOffset = getVec2(data[offShadowOffset:])
	b.ShadowBlur = getF32(data[offShadowBlur:])
	b.ShadowOpacity = getF32(data[offShadowOpacity:])

	b.ClipBounds = Rect{Min: getVec2(data[offClipBounds:]), Max: getVec2(data[offClipBounds+8:])}
	for i := range b.ClipRadii {
		b.ClipRadii[i] = getF32(data[offClipRadii+4*i:])
	}
	b.ClipX = getF32(data[offClipEnabled:]) > 0.5
	b.ClipY = getF32(data[offClipEnabled+4:]) > 0.5

	b.Notch = Notch{
		Edge:       NotchEdge(binary.LittleEndian.Uint32(data[offNotchEdge:])),
		Depth:      getF32(data[offNotchDepth:]),
		FlatWidth:  getF32(data[offNotchFlat:]),
		TotalWidth: getF32(data[offNotchTotal:]),
		Offset:     getF32(data[offNotchOffset:]),
		Anchor:     NotchAnchor(binary.LittleEndian.Uint32(data[offNotchAnchor:])),
	}

	b.sanitize()
	return nil
}

func putF32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

func getF32(buf []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf))
}

func putVec2(buf []byte, v Vec2) {
	putF32(buf, v.X)
	putF32(buf[4:], v.Y)
}

func getVec2(buf []byte) Vec2 {
	return Vec2{X: getF32(buf), Y: getF32(buf[4:])}
}

func putColor(buf []byte, c RGBA) {
	putF32(buf, c.R)
	putF32(buf[4:], c.G)
	putF32(buf[8:], c.B)
	putF32(buf[12:], c.A)
}

func getColor(buf []byte) RGBA {
	return RGBA{R: getF32(buf), G: getF32(buf[4:]), B: getF32(buf[8:]), A: getF32(buf[12:])}
}

func boolF32(v bool) float32 {
	if v {
		return 1
	}
	return 0
}

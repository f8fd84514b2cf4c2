//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// targetFormat is the format of every texture the pipeline touches. Pixmaps
// hold premultiplied RGBA8, so pixels are uploaded and read back unchanged.
const targetFormat = gputypes.TextureFormatRGBA8Unorm

// copyPitchAlignment is the row alignment required by texture to buffer
// copies.
const copyPitchAlignment = 256

// offscreenTarget holds the size-dependent textures: the color texture that
// draws render into, a backdrop texture frosted draws sample from, and the
// staging buffer used for readback. They are reused while the size stays
// the same.
type offscreenTarget struct {
	device hal.Device

	width, height uint32
	stride        uint32

	color        hal.Texture
	colorView    hal.TextureView
	backdrop     hal.Texture
	backdropView hal.TextureView
	staging      hal.Buffer
}

// alignedStride returns the row pitch for a readback of width pixels.
func alignedStride(width uint32) uint32 {
	row := width * 4
	return (row + copyPitchAlignment - 1) / copyPitchAlignment * copyPitchAlignment
}

// ensure (re)creates the textures when the size changed.
func (t *offscreenTarget) ensure(device hal.Device, w, h uint32) error {
	if t.device == device && t.width == w && t.height == h && t.color != nil {
		return nil
	}
	t.destroy()
	t.device = device

	color, colorView, err := createTexture(device, "frost_color", w, h,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc|gputypes.TextureUsageCopyDst)
	if err != nil {
		return err
	}
	t.color, t.colorView = color, colorView

	backdrop, backdropView, err := createTexture(device, "frost_backdrop", w, h,
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		t.destroy()
		return err
	}
	t.backdrop, t.backdropView = backdrop, backdropView

	t.stride = alignedStride(w)
	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "frost_readback",
		Size:  uint64(t.stride) * uint64(h),
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		t.destroy()
		return fmt.Errorf("create readback buffer: %w", err)
	}
	t.staging = staging
	t.width, t.height = w, h
	return nil
}

// extent returns the full texture extent.
func (t *offscreenTarget) extent() hal.Extent3D {
	return hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1}
}

func (t *offscreenTarget) destroy() {
	if t.device == nil {
		return
	}
	if t.staging != nil {
		t.device.DestroyBuffer(t.staging)
		t.staging = nil
	}
	if t.backdropView != nil {
		t.device.DestroyTextureView(t.backdropView)
		t.backdropView = nil
	}
	if t.backdrop != nil {
		t.device.DestroyTexture(t.backdrop)
		t.backdrop = nil
	}
	if t.colorView != nil {
		t.device.DestroyTextureView(t.colorView)
		t.colorView = nil
	}
	if t.color != nil {
		t.device.DestroyTexture(t.color)
		t.color = nil
	}
	t.width, t.height, t.stride = 0, 0, 0
}

// barrier returns a whole-texture usage transition.
func barrier(tex hal.Texture, from, to gputypes.TextureUsage) hal.TextureBarrier {
	return hal.TextureBarrier{
		Texture: tex,
		Range:   hal.TextureRange{Aspect: gputypes.TextureAspectAll, MipLevelCount: 1},
		Usage:   hal.TextureUsageTransition{OldUsage: from, NewUsage: to},
	}
}

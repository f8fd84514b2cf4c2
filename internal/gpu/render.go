//go:build !nogpu

package gpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/frost"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// preparedDraw is a draw call with its GPU binding and scissor rectangle.
type preparedDraw struct {
	index   int
	binding *drawBinding
	scissor image.Rectangle
	frosted bool
}

// frameResources collects everything created for one Render call so it can
// be released in one place.
type frameResources struct {
	device   hal.Device
	bindings []*drawBinding
	images   map[*frost.Pixmap]*imageTexture
}

type imageTexture struct {
	tex  hal.Texture
	view hal.TextureView
}

func (r *frameResources) release() {
	for _, b := range r.bindings {
		b.destroy(r.device)
	}
	for _, it := range r.images {
		r.device.DestroyTextureView(it.view)
		r.device.DestroyTexture(it.tex)
	}
	r.bindings = nil
	r.images = nil
}

// Render executes draws in order into target. The target pixels are
// uploaded, every draw is shaded on the GPU and the result is read back.
// Frosted draws copy the color texture into the backdrop texture right
// before they draw, so they see everything drawn earlier in the list.
//
// target is only written after the readback succeeded.
func (p *ComponentPipeline) Render(t *offscreenTarget, target *frost.Pixmap, draws []frost.DrawCall) error {
	w, h := target.Width(), target.Height()
	if w == 0 || h == 0 || len(draws) == 0 {
		return nil
	}
	if err := t.ensure(p.device, uint32(w), uint32(h)); err != nil { //nolint:gosec // pixmap dimensions fit uint32
		return err
	}

	res := &frameResources{device: p.device, images: make(map[*frost.Pixmap]*imageTexture)}
	defer res.release()

	prepared, err := p.prepare(res, t, draws, w, h)
	if err != nil {
		return err
	}
	if len(prepared) == 0 {
		return nil
	}

	if err := p.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.color, Aspect: gputypes.TextureAspectAll},
		target.Data(),
		&hal.ImageDataLayout{BytesPerRow: uint32(w) * 4, RowsPerImage: uint32(h)}, //nolint:gosec // see above
		&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	); err != nil {
		return fmt.Errorf("upload target: %w", err)
	}

	cmd, err := p.encode(t, res, prepared)
	if err != nil {
		return err
	}
	defer p.device.FreeCommandBuffer(cmd)

	if _, err := p.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := p.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	return p.readback(t, target)
}

// prepare uploads image content and creates one binding per visible draw.
func (p *ComponentPipeline) prepare(res *frameResources, t *offscreenTarget, draws []frost.DrawCall, w, h int) ([]preparedDraw, error) {
	prepared := make([]preparedDraw, 0, len(draws))
	for i := range draws {
		d := &draws[i]
		scissor := d.Block.PixelBounds(w, h)
		if scissor.Empty() {
			continue
		}

		var source hal.TextureView
		switch d.Block.Mode {
		case frost.ModeImage:
			view, err := p.imageView(res, d.Image)
			if err != nil {
				return nil, fmt.Errorf("draw %d: %w", i, err)
			}
			source = view
		case frost.ModeFrosted:
			source = t.backdropView
		}

		block, err := d.Block.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("draw %d: %w", i, err)
		}
		b, err := p.newBinding(block, source)
		if err != nil {
			return nil, fmt.Errorf("draw %d: %w", i, err)
		}
		res.bindings = append(res.bindings, b)
		prepared = append(prepared, preparedDraw{
			index:   i,
			binding: b,
			scissor: scissor,
			frosted: d.Block.Mode == frost.ModeFrosted,
		})
	}
	slogger().Debug("gpu: prepared draws", "draws", len(draws), "visible", len(prepared), "images", len(res.images))
	return prepared, nil
}

// imageView returns a texture view holding the pixels of img, uploading it
// on first use within the frame. Only *frost.Pixmap sources can be
// uploaded; other samplers are procedural and stay on the CPU.
func (p *ComponentPipeline) imageView(res *frameResources, img frost.Sampler) (hal.TextureView, error) {
	if img == nil {
		return nil, nil
	}
	pm, ok := img.(*frost.Pixmap)
	if !ok {
		return nil, fmt.Errorf("image sampler %T: %w", img, frost.ErrAcceleratorUnavailable)
	}
	if pm.Width() == 0 || pm.Height() == 0 {
		return nil, nil
	}
	if it, ok := res.images[pm]; ok {
		return it.view, nil
	}

	w, h := uint32(pm.Width()), uint32(pm.Height()) //nolint:gosec // pixmap dimensions fit uint32
	tex, view, err := createTexture(p.device, "frost_image", w, h,
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		return nil, err
	}
	res.images[pm] = &imageTexture{tex: tex, view: view}

	if err := p.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		pm.Data(),
		&hal.ImageDataLayout{BytesPerRow: w * 4, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return view, nil
}

// encode records the render passes, the backdrop copies and the readback
// copy into one command buffer.
func (p *ComponentPipeline) encode(t *offscreenTarget, res *frameResources, draws []preparedDraw) (hal.CommandBuffer, error) {
	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "frost_frame"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("frost_frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	barriers := []hal.TextureBarrier{
		barrier(t.color, gputypes.TextureUsageCopyDst, gputypes.TextureUsageRenderAttachment),
	}
	for _, it := range res.images {
		barriers = append(barriers, barrier(it.tex, gputypes.TextureUsageCopyDst, gputypes.TextureUsageTextureBinding))
	}
	encoder.TransitionTextures(barriers)

	// Consecutive non-frosted draws share a pass; each frosted draw gets a
	// fresh backdrop copy and a pass of its own.
	for start := 0; start < len(draws); {
		if draws[start].frosted {
			p.copyBackdrop(encoder, t)
			p.drawPass(encoder, t, draws[start:start+1])
			start++
			continue
		}
		end := start + 1
		for end < len(draws) && !draws[end].frosted {
			end++
		}
		p.drawPass(encoder, t, draws[start:end])
		start = end
	}

	encoder.TransitionTextures([]hal.TextureBarrier{
		barrier(t.color, gputypes.TextureUsageRenderAttachment, gputypes.TextureUsageCopySrc),
	})
	encoder.CopyTextureToBuffer(t.color, t.staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{BytesPerRow: t.stride, RowsPerImage: t.height},
		TextureBase:  hal.ImageCopyTexture{Texture: t.color, Aspect: gputypes.TextureAspectAll},
		Size:         t.extent(),
	}})

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	return cmd, nil
}

// copyBackdrop snapshots the color texture into the backdrop texture.
func (p *ComponentPipeline) copyBackdrop(encoder hal.CommandEncoder, t *offscreenTarget) {
	encoder.TransitionTextures([]hal.TextureBarrier{
		barrier(t.color, gputypes.TextureUsageRenderAttachment, gputypes.TextureUsageCopySrc),
		barrier(t.backdrop, gputypes.TextureUsageTextureBinding, gputypes.TextureUsageCopyDst),
	})
	encoder.CopyTextureToTexture(t.color, t.backdrop, []hal.TextureCopy{{
		SrcBase: hal.ImageCopyTexture{Texture: t.color, Aspect: gputypes.TextureAspectAll},
		DstBase: hal.ImageCopyTexture{Texture: t.backdrop, Aspect: gputypes.TextureAspectAll},
		Size:    t.extent(),
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{
		barrier(t.color, gputypes.TextureUsageCopySrc, gputypes.TextureUsageRenderAttachment),
		barrier(t.backdrop, gputypes.TextureUsageCopyDst, gputypes.TextureUsageTextureBinding),
	})
}

// drawPass records one render pass that loads the color texture and draws
// every call in order.
func (p *ComponentPipeline) drawPass(encoder hal.CommandEncoder, t *offscreenTarget, draws []preparedDraw) {
	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "frost_components",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    t.colorView,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
	})
	pass.SetPipeline(p.pipeline)
	pass.SetViewport(0, 0, float32(t.width), float32(t.height), 0, 1)
	for _, d := range draws {
		s := d.scissor
		pass.SetScissorRect(uint32(s.Min.X), uint32(s.Min.Y), uint32(s.Dx()), uint32(s.Dy())) //nolint:gosec // scissor is clamped to the target
		pass.SetBindGroup(0, d.binding.group, nil)
		pass.Draw(componentVertexCount, 1, 0, 0)
	}
	pass.End()
}

// readback maps the staging buffer and copies its rows into target.
func (p *ComponentPipeline) readback(t *offscreenTarget, target *frost.Pixmap) error {
	size := uint64(t.stride) * uint64(t.height)
	mapping, err := p.device.MapBuffer(t.staging, 0, size)
	if err != nil {
		return fmt.Errorf("map readback buffer: %w", err)
	}
	src := unsafe.Slice((*byte)(mapping.Ptr), size)
	dst := target.Data()
	row := int(t.width) * 4
	for y := 0; y < int(t.height); y++ {
		copy(dst[y*row:(y+1)*row], src[y*int(t.stride):])
	}
	if err := p.device.UnmapBuffer(t.staging); err != nil {
		slogger().Warn("gpu: unmap readback buffer", "err", err)
	}
	return nil
}

//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/component.wgsl
var componentShaderSource string

// componentVertexCount is the number of vertices per draw. The vertex stage
// emits one triangle covering the whole target; the scissor rectangle limits
// shading to the draw bounds.
const componentVertexCount = 3

// ComponentPipeline owns the GPU objects that shade styled rectangles with a
// vertex+fragment render pipeline.
//
// Bindings of group 0:
//
//	0: ParameterBlock uniform (frost.BlockSize bytes)
//	1: source texture (image content or captured backdrop)
//	2: clamp-to-edge linear sampler
//
// Draws without a source bind a 1x1 transparent placeholder.
type ComponentPipeline struct {
	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	sampler    hal.Sampler

	placeholder     hal.Texture
	placeholderView hal.TextureView
}

// NewComponentPipeline compiles the shader and creates the pipeline objects
// on device.
func NewComponentPipeline(device hal.Device, queue hal.Queue) (*ComponentPipeline, error) {
	if componentShaderSource == "" {
		return nil, fmt.Errorf("component shader source is empty")
	}
	p := &ComponentPipeline{device: device, queue: queue}
	if err := p.createPipeline(); err != nil {
		p.Destroy()
		return nil, err
	}
	if err := p.createPlaceholder(); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *ComponentPipeline) createPipeline() error {
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "frost_component_shader",
		Source: hal.ShaderSource{WGSL: componentShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile component shader: %w", err)
	}
	p.shader = shader

	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "frost_component_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create component bind layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "frost_component_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create component pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	blend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "frost_component_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    targetFormat,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create component render pipeline: %w", err)
	}
	p.pipeline = pipeline

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "frost_component_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
	})
	if err != nil {
		return fmt.Errorf("create component sampler: %w", err)
	}
	p.sampler = sampler
	return nil
}

// createPlaceholder makes the 1x1 transparent texture bound by draws that
// sample nothing.
func (p *ComponentPipeline) createPlaceholder() error {
	tex, view, err := createTexture(p.device, "frost_placeholder", 1, 1,
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		return err
	}
	p.placeholder, p.placeholderView = tex, view
	return p.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		make([]byte, 4),
		&hal.ImageDataLayout{BytesPerRow: 4, RowsPerImage: 1},
		&hal.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1},
	)
}

// newBinding creates the uniform buffer and bind group for one draw.
// block is the encoded ParameterBlock; source is nil for draws that sample
// nothing.
func (p *ComponentPipeline) newBinding(block []byte, source hal.TextureView) (*drawBinding, error) {
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "frost_block_uniform",
		Size:  uint64(len(block)),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create block uniform: %w", err)
	}
	if err := p.queue.WriteBuffer(buf, 0, block); err != nil {
		p.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("upload block uniform: %w", err)
	}
	if source == nil {
		source = p.placeholderView
	}
	group, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "frost_component_bind_group",
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Size: uint64(len(block))}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: source.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: p.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		p.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("create component bind group: %w", err)
	}
	return &drawBinding{uniform: buf, group: group}, nil
}

// Destroy releases the pipeline objects. Safe to call more than once.
func (p *ComponentPipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.placeholderView != nil {
		p.device.DestroyTextureView(p.placeholderView)
		p.placeholderView = nil
	}
	if p.placeholder != nil {
		p.device.DestroyTexture(p.placeholder)
		p.placeholder = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// drawBinding is the per-draw uniform buffer and bind group.
type drawBinding struct {
	uniform hal.Buffer
	group   hal.BindGroup
}

func (b *drawBinding) destroy(device hal.Device) {
	device.DestroyBindGroup(b.group)
	device.DestroyBuffer(b.uniform)
}

// createTexture creates a w x h RGBA8 texture and a view over it.
func createTexture(device hal.Device, label string, w, h uint32, usage gputypes.TextureUsage) (hal.Texture, hal.TextureView, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s texture: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        targetFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return tex, view, nil
}

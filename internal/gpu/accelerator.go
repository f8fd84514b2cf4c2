//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/frost"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// ErrDeviceLost is returned by DrawComponents when a render failed. Later
// calls wrap it in frost.ErrAcceleratorUnavailable, so the renderer stays
// on the CPU quietly until a new device is set.
var ErrDeviceLost = errors.New("gpu: device lost")

// Accelerator renders frost draw calls on the GPU through wgpu/hal. It
// implements frost.GPUAccelerator.
//
// Init never fails: without a usable adapter the accelerator stays
// registered but reports frost.ErrAcceleratorUnavailable, so rendering
// silently stays on the CPU.
type Accelerator struct {
	mu sync.Mutex

	backend    gputypes.Backend
	backendSet bool

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	adapter  string

	pipeline *ComponentPipeline
	target   offscreenTarget

	ready          bool
	lost           bool
	externalDevice bool // shared device, not destroyed on Close
}

var (
	_ frost.GPUAccelerator      = (*Accelerator)(nil)
	_ frost.DeviceProviderAware = (*Accelerator)(nil)
)

// NewAccelerator returns an accelerator that opens its device on backend.
// The zero Accelerator uses Vulkan.
func NewAccelerator(backend gputypes.Backend) *Accelerator {
	return &Accelerator{backend: backend, backendSet: true}
}

// Name returns "wgpu".
func (a *Accelerator) Name() string { return "wgpu" }

// Adapter returns the name of the adapter in use, or "" before a device was
// opened.
func (a *Accelerator) Adapter() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.adapter
}

// Ready reports whether draws run on the GPU.
func (a *Accelerator) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ready && !a.lost
}

// SetLogger routes the package diagnostics to l.
func (a *Accelerator) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// Init opens a device on the configured backend and builds the pipeline.
func (a *Accelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.initGPU(); err != nil {
		slogger().Warn("gpu: init failed, using CPU rendering", "err", err)
	}
	return nil
}

func (a *Accelerator) initGPU() error {
	variant := gputypes.BackendVulkan
	if a.backendSet {
		variant = a.backend
	}
	backend, ok := hal.GetBackend(variant)
	if !ok {
		return fmt.Errorf("backend %v not available", variant)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		a.releaseDevice()
		return fmt.Errorf("no GPU adapters found")
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	open, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		a.releaseDevice()
		return fmt.Errorf("open device: %w", err)
	}
	a.device = open.Device
	a.queue = open.Queue
	a.adapter = selected.Info.Name

	if err := a.buildPipeline(); err != nil {
		a.releaseDevice()
		return err
	}
	slogger().Info("gpu: accelerator initialized", "adapter", a.adapter)
	return nil
}

func (a *Accelerator) buildPipeline() error {
	p, err := NewComponentPipeline(a.device, a.queue)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	a.pipeline = p
	a.ready = true
	a.lost = false
	return nil
}

// SetDeviceProvider switches to a GPU device owned by the host. The provider
// must implement gpucontext.DeviceProvider and expose its HAL objects through
// HalDevice() any and HalQueue() any.
func (a *Accelerator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	dp, ok := provider.(gpucontext.DeviceProvider)
	if !ok {
		return fmt.Errorf("gpu: provider %T is not a gpucontext.DeviceProvider", provider)
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseDevice()
	a.device = device
	a.queue = queue
	a.externalDevice = true
	a.adapter = dp.AdapterInfo().Name

	if err := a.buildPipeline(); err != nil {
		return fmt.Errorf("gpu: create pipeline with shared device: %w", err)
	}
	slogger().Info("gpu: switched to shared device", "adapter", a.adapter)
	return nil
}

// DrawComponents implements frost.GPUAccelerator.
func (a *Accelerator) DrawComponents(target *frost.Pixmap, draws []frost.DrawCall) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lost {
		return fmt.Errorf("%w: %w", frost.ErrAcceleratorUnavailable, ErrDeviceLost)
	}
	if !a.ready {
		return frost.ErrAcceleratorUnavailable
	}
	if err := a.pipeline.Render(&a.target, target, draws); err != nil {
		if errors.Is(err, frost.ErrAcceleratorUnavailable) {
			return err
		}
		a.lost = true
		slogger().Warn("gpu: render failed, disabling accelerator", "draws", len(draws), "err", err)
		return fmt.Errorf("%w: %w", ErrDeviceLost, err)
	}
	slogger().Debug("gpu: rendered", "draws", len(draws), "size", target.Bounds().Size())
	return nil
}

// Close releases every GPU resource. A shared device is left alive.
func (a *Accelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseDevice()
}

// releaseDevice must be called with mu held.
func (a *Accelerator) releaseDevice() {
	a.target.destroy()
	a.target = offscreenTarget{}
	if a.pipeline != nil {
		a.pipeline.Destroy()
		a.pipeline = nil
	}
	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
		}
		if a.instance != nil {
			a.instance.Destroy()
		}
	}
	a.device = nil
	a.queue = nil
	a.instance = nil
	a.adapter = ""
	a.ready = false
	a.lost = false
	a.externalDevice = false
}

//go:build !nogpu

// Package gpu registers the GPU accelerator for frost.
//
// Import it for its side effect:
//
//	import _ "github.com/gogpu/frost/gpu"
//
// Renderer.Render then shades draw lists on the GPU through wgpu/hal. If no
// Vulkan device is available the accelerator reports itself unavailable and
// rendering stays on the CPU.
package gpu

import (
	"github.com/gogpu/frost"
	gpuimpl "github.com/gogpu/frost/internal/gpu"
)

func init() {
	if err := frost.RegisterAccelerator(&gpuimpl.Accelerator{}); err != nil {
		frost.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider makes the accelerator use a GPU device owned by the host
// instead of opening its own. The provider must be a
// gpucontext.DeviceProvider that also exposes HalDevice() any and
// HalQueue() any.
func SetDeviceProvider(provider any) error {
	return frost.SetAcceleratorDeviceProvider(provider)
}

// Ready reports whether the registered accelerator has a working device.
func Ready() bool {
	a, ok := frost.Accelerator().(*gpuimpl.Accelerator)
	return ok && a.Ready()
}

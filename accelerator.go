package frost

import (
	"errors"
	"sync"
)

// DrawCall is one component draw: its block and, for ModeImage, the bound
// image. Backdrops are not part of a draw call; whoever executes the calls
// captures them in order.
type DrawCall struct {
	Block ParameterBlock
	Image Sampler
}

// GPUAccelerator renders draw calls on other hardware than the CPU.
//
// When registered via RegisterAccelerator and enabled on a Renderer, Render
// offers each draw list to the accelerator first. Any error, including
// ErrAcceleratorUnavailable, makes the renderer fall back to the CPU path
// for that list, so implementations must leave the target untouched when
// they fail.
//
// Implementations are provided by backend packages and enabled with a blank
// import:
//
//	import _ "github.com/gogpu/frost/gpu"
type GPUAccelerator interface {
	// Name returns the accelerator name.
	Name() string

	// Init acquires device resources. Called once during registration.
	Init() error

	// Close releases device resources.
	Close()

	// DrawComponents executes the draws in order into target, capturing a
	// backdrop of the target before every ModeFrosted draw.
	DrawComponents(target *Pixmap, draws []DrawCall) error
}

// DeviceProviderAware is implemented by accelerators that can reuse a GPU
// device owned by the host application.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   GPUAccelerator
)

// RegisterAccelerator initializes and registers a, replacing and closing
// any previous accelerator. If Init fails, nothing changes.
func RegisterAccelerator(a GPUAccelerator) error {
	if a == nil {
		return errors.New("frost: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}

	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()

	propagateLogger(a, Logger())
	if old != nil {
		old.Close()
	}
	return nil
}

// UnregisterAccelerator closes and removes the registered accelerator.
func UnregisterAccelerator() {
	accelMu.Lock()
	old := accel
	accel = nil
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
}

// Accelerator returns the registered accelerator, or nil.
func Accelerator() GPUAccelerator {
	accelMu.RLock()
	defer accelMu.RUnlock()
	return accel
}

// SetAcceleratorDeviceProvider hands a host GPU device to the registered
// accelerator. Without an accelerator, or if it cannot share devices, this
// is a no-op.
func SetAcceleratorDeviceProvider(provider any) error {
	if dpa, ok := Accelerator().(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}

//go:build nogpu

package gpu

// SetDeviceProvider does nothing in builds without GPU support.
func SetDeviceProvider(any) error { return nil }

// Ready always reports false in builds without GPU support.
func Ready() bool { return false }

package frost

import (
	"errors"
	"log/slog"
	"sync"
	"testing"
)

var (
	_ GPUAccelerator      = (*mockAccelerator)(nil)
	_ DeviceProviderAware = (*mockAccelerator)(nil)
)

// mockAccelerator implements GPUAccelerator for testing.
type mockAccelerator struct {
	name    string
	initErr error
	drawErr error
	paint   RGBA // written to every pixel on success

	mu       sync.Mutex
	closed   bool
	calls    int
	logger   *slog.Logger
	provider any
}

func (m *mockAccelerator) Name() string { return m.name }

func (m *mockAccelerator) Init() error { return m.initErr }

func (m *mockAccelerator) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

func (m *mockAccelerator) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *mockAccelerator) DrawComponents(target *Pixmap, _ []DrawCall) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.drawErr != nil {
		return m.drawErr
	}
	target.Clear(m.paint)
	return nil
}

func (m *mockAccelerator) SetLogger(l *slog.Logger) {
	m.mu.Lock()
	m.logger = l
	m.mu.Unlock()
}

func (m *mockAccelerator) SetDeviceProvider(p any) error {
	m.mu.Lock()
	m.provider = p
	m.mu.Unlock()
	return nil
}

// resetAccelerator clears the global accelerator state between tests.
func resetAccelerator() {
	accelMu.Lock()
	accel = nil
	accelMu.Unlock()
}

func TestRegisterAcceleratorNil(t *testing.T) {
	resetAccelerator()

	if err := RegisterAccelerator(nil); err == nil {
		t.Fatal("expected error when registering nil accelerator")
	}
	if Accelerator() != nil {
		t.Error("accelerator should remain nil after failed registration")
	}
}

func TestRegisterAcceleratorInitError(t *testing.T) {
	resetAccelerator()

	initErr := errors.New("no adapter")
	err := RegisterAccelerator(&mockAccelerator{name: "failing", initErr: initErr})
	if !errors.Is(err, initErr) {
		t.Errorf("expected init error, got: %v", err)
	}
	if Accelerator() != nil {
		t.Error("accelerator should remain nil after Init failure")
	}
}

func TestRegisterAcceleratorReplacesOld(t *testing.T) {
	resetAccelerator()
	defer resetAccelerator()

	first := &mockAccelerator{name: "first"}
	second := &mockAccelerator{name: "second"}
	if err := RegisterAccelerator(first); err != nil {
		t.Fatal(err)
	}
	if err := RegisterAccelerator(second); err != nil {
		t.Fatal(err)
	}

	if !first.isClosed() {
		t.Error("expected first accelerator to be closed after replacement")
	}
	if second.isClosed() {
		t.Error("second accelerator should not be closed")
	}
	if a := Accelerator(); a == nil || a.Name() != "second" {
		t.Errorf("current accelerator = %v", a)
	}

	UnregisterAccelerator()
	if !second.isClosed() || Accelerator() != nil {
		t.Error("UnregisterAccelerator did not close and remove")
	}
}

func TestSetAcceleratorDeviceProvider(t *testing.T) {
	resetAccelerator()
	defer resetAccelerator()

	if err := SetAcceleratorDeviceProvider("device"); err != nil {
		t.Errorf("without accelerator: %v", err)
	}

	mock := &mockAccelerator{name: "gpu"}
	if err := RegisterAccelerator(mock); err != nil {
		t.Fatal(err)
	}
	if err := SetAcceleratorDeviceProvider("device"); err != nil {
		t.Fatal(err)
	}
	if mock.provider != "device" {
		t.Errorf("provider = %v", mock.provider)
	}
}

func TestRenderUsesAccelerator(t *testing.T) {
	resetAccelerator()
	defer resetAccelerator()

	mock := &mockAccelerator{name: "gpu", paint: Green}
	if err := RegisterAccelerator(mock); err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(WithWorkers(1))
	defer r.Close()
	target := NewPixmap(20, 20)
	if err := r.Render(target, []VisualComponent{NewComponent(0, 0, 10, 10, Red)}); err != nil {
		t.Fatal(err)
	}
	if mock.calls != 1 {
		t.Errorf("accelerator called %d times", mock.calls)
	}
	if got := target.Pixel(5, 5); got != Green {
		t.Errorf("pixel = %v, want the accelerator's output", got)
	}
}

func TestRenderFallsBackToCPU(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unavailable", ErrAcceleratorUnavailable},
		{"device lost", errors.New("device lost")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetAccelerator()
			defer resetAccelerator()

			mock := &mockAccelerator{name: "gpu", drawErr: tt.err}
			if err := RegisterAccelerator(mock); err != nil {
				t.Fatal(err)
			}

			r := NewRenderer(WithWorkers(1))
			defer r.Close()
			target := NewPixmap(20, 20)
			if err := r.Render(target, []VisualComponent{NewComponent(0, 0, 10, 10, Red)}); err != nil {
				t.Fatal(err)
			}
			if mock.calls != 1 {
				t.Errorf("accelerator called %d times", mock.calls)
			}
			if got := target.Pixel(5, 5); got != Red {
				t.Errorf("pixel = %v, want CPU output", got)
			}
		})
	}
}

func TestRenderWithoutAcceleratorOption(t *testing.T) {
	resetAccelerator()
	defer resetAccelerator()

	mock := &mockAccelerator{name: "gpu", paint: Green}
	if err := RegisterAccelerator(mock); err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(WithAccelerator(false))
	defer r.Close()
	if err := r.Render(NewPixmap(8, 8), []VisualComponent{NewComponent(0, 0, 4, 4, Red)}); err != nil {
		t.Fatal(err)
	}
	if mock.calls != 0 {
		t.Errorf("disabled accelerator called %d times", mock.calls)
	}
}

package frost

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	r := frost.NewRenderer(frost.WithWorkers(4), frost.WithBandHeight(32))
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	workers        int
	bandHeight     int
	blockCacheSize int
	accelerate     bool
}

func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		workers:        0, // GOMAXPROCS
		bandHeight:     32,
		blockCacheSize: 256,
		accelerate:     true,
	}
}

// WithWorkers sets the number of shading goroutines. Zero or less uses
// GOMAXPROCS; one shades on the calling goroutine.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithBandHeight sets how many rows one parallel work item shades.
func WithBandHeight(rows int) RendererOption {
	return func(o *rendererOptions) {
		if rows > 0 {
			o.bandHeight = rows
		}
	}
}

// WithBlockCacheSize sets how many parameter blocks DrawCached keeps.
// Zero or less means unlimited.
func WithBlockCacheSize(n int) RendererOption {
	return func(o *rendererOptions) {
		o.blockCacheSize = n
	}
}

// WithAccelerator enables or disables use of the registered accelerator by
// Render. It is enabled by default; Frame drawing always runs on the CPU.
func WithAccelerator(enabled bool) RendererOption {
	return func(o *rendererOptions) {
		o.accelerate = enabled
	}
}

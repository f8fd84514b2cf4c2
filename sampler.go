package frost

// Sampler is a read-only image that can be sampled at normalized
// coordinates. Implementations return premultiplied colors and clamp
// coordinates outside [0, 1] to the nearest edge.
//
// Block caching compares samplers by identity, so pointer types such as
// *Pixmap are reused across frames while non-comparable values are rebuilt
// every time.
type Sampler interface {
	Sample(u, v float32) RGBA
}

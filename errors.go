package frost

import "errors"

var (
	// ErrNilTarget is returned when a frame is started without a target pixmap.
	ErrNilTarget = errors.New("frost: nil render target")

	// ErrMissingImage is returned for Image content without a source.
	ErrMissingImage = errors.New("frost: image content has no source")

	// ErrStaleBackdrop is returned when a backdrop captured in one frame is
	// used in another.
	ErrStaleBackdrop = errors.New("frost: backdrop belongs to a previous frame")

	// ErrFrameEnded is returned when drawing into a frame after End.
	ErrFrameEnded = errors.New("frost: frame already ended")

	// ErrBlockSize is returned when decoding a parameter block from a buffer
	// of the wrong length.
	ErrBlockSize = errors.New("frost: parameter block has wrong size")

	// ErrAcceleratorUnavailable is returned by accelerators that cannot
	// serve a request; the renderer then falls back to the CPU path.
	ErrAcceleratorUnavailable = errors.New("frost: accelerator unavailable")
)

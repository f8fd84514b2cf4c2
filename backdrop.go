package frost

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
)

// CapturedBackdrop is a snapshot of already rendered pixels beneath a
// frosted component. It is sampled in screen-normalized coordinates and is
// only valid within the frame that captured it.
type CapturedBackdrop struct {
	frame  uint64
	region image.Rectangle
	screen Vec2
	pix    *Pixmap
}

// CaptureBackdrop copies the pixels of target inside region. frame is the
// id of the frame the capture belongs to.
func CaptureBackdrop(target *Pixmap, region image.Rectangle, frame uint64) *CapturedBackdrop {
	region = region.Intersect(target.Bounds())
	return &CapturedBackdrop{
		frame:  frame,
		region: region,
		screen: target.Size(),
		pix:    target.Crop(region),
	}
}

// backdropRegion returns the pixel rectangle a frosted block may sample: its
// draw bounds grown by the blur reach, clamped to a w x h target.
func backdropRegion(b *ParameterBlock, w, h int) image.Rectangle {
	reach := float32(0)
	switch BlurStrategyFor(b.BlurRadius) {
	case BlurBox:
		reach = b.BlurRadius * boxStep
	case BlurRing:
		reach = b.BlurRadius * ringReach
	}
	r := b.DrawBounds().Outset(reach + 1)
	return image.Rect(
		int(math32.Floor(r.Min.X)), int(math32.Floor(r.Min.Y)),
		int(math32.Ceil(r.Max.X)), int(math32.Ceil(r.Max.Y)),
	).Intersect(image.Rect(0, 0, w, h))
}

// Frame returns the id of the frame the backdrop was captured in.
func (b *CapturedBackdrop) Frame() uint64 { return b.frame }

// Region returns the captured pixel rectangle in screen space.
func (b *CapturedBackdrop) Region() image.Rectangle { return b.region }

// Pixmap returns the captured pixels. The returned pixmap must be treated as
// read-only.
func (b *CapturedBackdrop) Pixmap() *Pixmap { return b.pix }

// checkFrame reports ErrStaleBackdrop when the backdrop is used in another
// frame than the one that captured it.
func (b *CapturedBackdrop) checkFrame(frame uint64) error {
	if b.frame != frame {
		return fmt.Errorf("captured in frame %d, used in frame %d: %w", b.frame, frame, ErrStaleBackdrop)
	}
	return nil
}

// Sample implements Sampler over screen-normalized coordinates. Points
// outside the captured region clamp to its nearest edge.
func (b *CapturedBackdrop) Sample(u, v float32) RGBA {
	if b.region.Empty() {
		return Transparent
	}
	x := u*b.screen.X - float32(b.region.Min.X)
	y := v*b.screen.Y - float32(b.region.Min.Y)
	return b.pix.Sample(x/float32(b.region.Dx()), y/float32(b.region.Dy()))
}

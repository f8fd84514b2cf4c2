package frost

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/frost/internal/parallel"
)

// Renderer draws visual components into pixmaps. The CPU path shades every
// draw on a pool of goroutines, one band of rows per work item.
//
// A Renderer is safe for concurrent use, but frames drawing into the same
// target must not overlap.
type Renderer struct {
	opts   rendererOptions
	pool   *parallel.Pool
	blocks *BlockCache
	frames atomic.Uint64
}

// NewRenderer creates a renderer. Call Close to stop its goroutines.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		opts:   o,
		pool:   parallel.NewPool(o.workers),
		blocks: NewBlockCache(o.blockCacheSize),
	}
}

// Close stops the shading goroutines. The renderer must not be used
// afterwards.
func (r *Renderer) Close() {
	r.pool.Close()
}

// Blocks returns the block cache used by Frame.DrawCached.
func (r *Renderer) Blocks() *BlockCache {
	return r.blocks
}

// BeginFrame starts a frame drawing into target. Backdrops captured in the
// frame are only valid until End.
func (r *Renderer) BeginFrame(target *Pixmap) (*Frame, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	return &Frame{r: r, target: target, id: r.frames.Add(1)}, nil
}

// Render draws components in order into target. When an accelerator is
// registered and enabled it is tried first; on failure the draws run on the
// CPU.
func (r *Renderer) Render(target *Pixmap, components []VisualComponent) error {
	if target == nil {
		return ErrNilTarget
	}
	draws := make([]DrawCall, len(components))
	screen := target.Size()
	for i := range components {
		c := &components[i]
		if err := c.Validate(); err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		draws[i] = DrawCall{Block: NewParameterBlock(c, screen)}
		if img, ok := c.Content.(Image); ok {
			draws[i].Image = img.Source
		}
	}
	return r.RenderDraws(target, draws)
}

// RenderDraws executes prepared draw calls in order into target.
func (r *Renderer) RenderDraws(target *Pixmap, draws []DrawCall) error {
	if target == nil {
		return ErrNilTarget
	}
	groups := SplitRenderGroups(draws)
	Logger().Debug("frost: render", "draws", len(draws), "groups", len(groups))

	if r.opts.accelerate {
		if a := Accelerator(); a != nil {
			err := a.DrawComponents(target, draws)
			if err == nil {
				return nil
			}
			if !errors.Is(err, ErrAcceleratorUnavailable) {
				Logger().Warn("frost: accelerator failed, falling back to CPU", "accelerator", a.Name(), "err", err)
			}
		}
	}

	f, err := r.BeginFrame(target)
	if err != nil {
		return err
	}
	defer f.End()
	for _, g := range groups {
		for i := g.Start; i < g.End; i++ {
			d := &draws[i]
			var backdrop *CapturedBackdrop
			if g.Frosted {
				backdrop = f.Capture(&d.Block)
			}
			if err := f.DrawBlock(&d.Block, d.Image, backdrop); err != nil {
				return fmt.Errorf("draw %d: %w", i, err)
			}
		}
	}
	return nil
}

// Frame is one pass of drawing into a target. Draw order is paint order.
type Frame struct {
	r      *Renderer
	target *Pixmap
	id     uint64
	ended  bool
	draws  int
}

// ID returns the frame id. Ids increase monotonically per renderer.
func (f *Frame) ID() uint64 { return f.id }

// Target returns the pixmap the frame draws into.
func (f *Frame) Target() *Pixmap { return f.target }

// Draws returns the number of draws issued so far.
func (f *Frame) Draws() int { return f.draws }

// Draw builds the block for c and draws it. A frosted component captures
// its backdrop first, so everything drawn before it in this frame shows
// through.
func (f *Frame) Draw(c *VisualComponent) error {
	if err := c.Validate(); err != nil {
		return err
	}
	b := NewParameterBlock(c, f.target.Size())
	return f.drawComponent(c, &b)
}

// DrawCached is Draw with the block taken from the renderer's BlockCache
// under id, so an unchanged component reuses its previous block.
func (f *Frame) DrawCached(id string, c *VisualComponent) error {
	if err := c.Validate(); err != nil {
		return err
	}
	b := f.r.blocks.Block(id, c, f.target.Size())
	return f.drawComponent(c, &b)
}

func (f *Frame) drawComponent(c *VisualComponent, b *ParameterBlock) error {
	var image Sampler
	if img, ok := c.Content.(Image); ok {
		image = img.Source
	}
	var backdrop *CapturedBackdrop
	if b.Mode == ModeFrosted {
		if f.ended {
			return ErrFrameEnded
		}
		backdrop = f.Capture(b)
	}
	return f.DrawBlock(b, image, backdrop)
}

// Capture snapshots the part of the target a frosted block can sample.
// It must be called after everything beneath the block has been drawn and
// before the block's own draw.
func (f *Frame) Capture(b *ParameterBlock) *CapturedBackdrop {
	region := backdropRegion(b, f.target.Width(), f.target.Height())
	bd := CaptureBackdrop(f.target, region, f.id)
	Logger().Debug("frost: backdrop captured", "frame", f.id, "region", region, "blur", b.BlurRadius)
	return bd
}

// DrawBlock shades one block into the target. image is used by ModeImage
// and backdrop by ModeFrosted; a backdrop from another frame is rejected.
func (f *Frame) DrawBlock(b *ParameterBlock, image Sampler, backdrop *CapturedBackdrop) error {
	if f.ended {
		return ErrFrameEnded
	}
	var bd Sampler
	if backdrop != nil {
		if err := backdrop.checkFrame(f.id); err != nil {
			return err
		}
		bd = backdrop
	}

	e := NewEvaluator(b, image, bd)
	x0, y0, x1, y1 := b.DrawBounds().pixelBounds(f.target.Width(), f.target.Height())
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	target := f.target
	f.r.pool.Run(parallel.Split(y0, y1, f.r.opts.bandHeight), func(band parallel.Band) {
		shadeBand(e, target, pixelSpan{x0: x0, x1: x1, y0: band.Y0, y1: band.Y1})
	})
	f.draws++
	return nil
}

// End finishes the frame. Backdrops captured in it become stale.
func (f *Frame) End() {
	f.ended = true
}

// pixelSpan is a pixel span [x0,x1)x[y0,y1).
type pixelSpan struct {
	x0, x1, y0, y1 int
}

// shadeBand evaluates every pixel center in span and blends the result into
// target.
func shadeBand(e *Evaluator, target *Pixmap, span pixelSpan) {
	for y := span.y0; y < span.y1; y++ {
		py := float32(y) + 0.5
		for x := span.x0; x < span.x1; x++ {
			c, ok := e.Shade(Vec2{X: float32(x) + 0.5, Y: py})
			if !ok {
				continue
			}
			target.blendPixel(x, y, c)
		}
	}
}

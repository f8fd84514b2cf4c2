package frost

import (
	"fmt"
	"reflect"
)

// VisualComponent is one styled rectangle as described by the host UI.
// It is a plain value; use Equal to tell whether a previously built
// ParameterBlock can be reused.
type VisualComponent struct {
	Position Vec2
	Size     Vec2
	Radii    CornerRadii
	Border   Border
	Shadow   Shadow
	Clip     Clip
	Notch    Notch
	Content  Content
	Opacity  float32
}

// NewComponent returns a fully opaque component filled with a solid color.
func NewComponent(x, y, w, h float32, fill RGBA) VisualComponent {
	return VisualComponent{
		Position: Vec2{X: x, Y: y},
		Size:     Vec2{X: w, Y: h},
		Content:  Solid{Color: fill},
		Opacity:  1,
	}
}

// Bounds returns the nominal rectangle of the component.
func (c *VisualComponent) Bounds() Rect {
	return Rect{Min: c.Position, Max: c.Position.Add(c.Size)}
}

// Frosted reports whether the component samples a backdrop.
func (c *VisualComponent) Frosted() bool {
	return ModeOf(c.Content) == ModeFrosted
}

// Validate performs the host-side checks the shading core relies on.
// Numeric ranges are not checked here; they are clamped when the block is
// built.
func (c *VisualComponent) Validate() error {
	if img, ok := c.Content.(Image); ok && img.Source == nil {
		return fmt.Errorf("frost: component at (%g,%g): %w", c.Position.X, c.Position.Y, ErrMissingImage)
	}
	return nil
}

// Equal reports whether c and o describe the same component. Image sources
// are compared by identity; a source whose value cannot be compared with ==
// never equals anything, so its block is rebuilt instead of reused.
func (c *VisualComponent) Equal(o *VisualComponent) bool {
	if c.Position != o.Position || c.Size != o.Size || c.Radii != o.Radii ||
		c.Border != o.Border || c.Shadow != o.Shadow || c.Clip != o.Clip ||
		c.Notch != o.Notch || c.Opacity != o.Opacity {
		return false
	}
	return sameContent(c.Content, o.Content)
}

func sameContent(a, b Content) bool {
	switch a := a.(type) {
	case Solid:
		b, ok := b.(Solid)
		return ok && a == b
	case FrostedGlass:
		b, ok := b.(FrostedGlass)
		return ok && a == b
	case Image:
		b, ok := b.(Image)
		return ok && sameSampler(a.Source, b.Source)
	case nil:
		return b == nil
	default:
		return false
	}
}

func sameSampler(a, b Sampler) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

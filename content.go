package frost

// ContentMode is the numeric content tag stored in a ParameterBlock.
type ContentMode uint32

// Content modes. The numeric values are part of the block layout.
const (
	ModeSolid ContentMode = iota
	ModeImage
	ModeFrosted
)

// String returns the mode name.
func (m ContentMode) String() string {
	switch m {
	case ModeImage:
		return "image"
	case ModeFrosted:
		return "frosted"
	default:
		return "solid"
	}
}

// Content is what fills a component's content area: Solid, Image or
// FrostedGlass. The set is closed.
type Content interface {
	mode() ContentMode
}

// Solid fills the content area with a flat color.
type Solid struct {
	Color RGBA
}

// Image fills the content area with a sampled image stretched over the
// content box. Use FitImage to prepare a source for other scale modes.
type Image struct {
	Source Sampler
}

// FrostedGlass fills the content area with a blurred, tinted copy of
// whatever was drawn beneath the component earlier in the frame.
//
// The pane is opaque: the blurred backdrop is unpremultiplied before the
// tint is mixed in, so transparent backdrop pixels count as black. Over an
// empty target the default style yields a dark gray pane. Draw a
// background first, or lower the component Opacity, when that is not
// wanted.
type FrostedGlass struct {
	Tint          RGBA
	TintIntensity float32
	BlurRadius    float32
	Opacity       float32
}

// DefaultFrostedGlass returns a light frosted style.
func DefaultFrostedGlass() FrostedGlass {
	return FrostedGlass{
		Tint:          RGBA{R: 1, G: 1, B: 1, A: 0.5},
		TintIntensity: 0.35,
		BlurRadius:    12,
		Opacity:       1,
	}
}

func (Solid) mode() ContentMode        { return ModeSolid }
func (Image) mode() ContentMode        { return ModeImage }
func (FrostedGlass) mode() ContentMode { return ModeFrosted }

// ModeOf returns the content tag for c. A nil content is Solid.
func ModeOf(c Content) ContentMode {
	if c == nil {
		return ModeSolid
	}
	return c.mode()
}

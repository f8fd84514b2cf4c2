package frost

import "fmt"

// Corner indexes a per-corner array.
type Corner int

// Corners in block order.
const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// String returns the corner name.
func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "TopLeft"
	case TopRight:
		return "TopRight"
	case BottomLeft:
		return "BottomLeft"
	case BottomRight:
		return "BottomRight"
	default:
		return fmt.Sprintf("Corner(%d)", int(c))
	}
}

// CornerRadii holds one radius per Corner.
type CornerRadii [4]float32

// Uniform returns radii with the same value on every corner.
func Uniform(r float32) CornerRadii {
	return CornerRadii{r, r, r, r}
}

// quadrant returns the corner whose quadrant contains p, where p is relative
// to the shape center and y grows downward.
func quadrant(p Vec2) Corner {
	switch {
	case p.X < 0 && p.Y < 0:
		return TopLeft
	case p.Y < 0:
		return TopRight
	case p.X < 0:
		return BottomLeft
	default:
		return BottomRight
	}
}

// clamped limits every radius to [0, limit].
func (r CornerRadii) clamped(limit float32) CornerRadii {
	limit = max(limit, 0)
	for i := range r {
		r[i] = clampf(r[i], 0, limit)
	}
	return r
}

// IsZero reports whether all radii are zero.
func (r CornerRadii) IsZero() bool {
	return r == CornerRadii{}
}

// BorderPosition selects where a border sits relative to the nominal edge.
type BorderPosition uint32

// Border positions. The numeric values are part of the block layout.
const (
	// BorderInside grows inward; the content area shrinks by the full width.
	BorderInside BorderPosition = iota
	// BorderCenter straddles the nominal edge.
	BorderCenter
	// BorderOutside grows outward; the content area is unchanged.
	BorderOutside
)

// String returns the position name as used in scene files.
func (p BorderPosition) String() string {
	switch p {
	case BorderInside:
		return "inside"
	case BorderCenter:
		return "center"
	case BorderOutside:
		return "outside"
	default:
		return fmt.Sprintf("BorderPosition(%d)", uint32(p))
	}
}

// expandInset returns how far the outer shape grows past the nominal edge
// and how far the content shape shrinks from it. They always sum to width.
func (p BorderPosition) expandInset(width float32) (expand, inset float32) {
	switch p {
	case BorderCenter:
		return width * 0.5, width * 0.5
	case BorderOutside:
		return width, 0
	default:
		return 0, width
	}
}

// Border styles a component edge. A zero Width disables the border.
type Border struct {
	Width    float32
	Position BorderPosition
	Color    RGBA
}

// Shadow is a drop shadow drawn beneath the component using the component's
// own shape. A zero color alpha or zero opacity disables it.
type Shadow struct {
	Offset  Vec2
	Blur    float32
	Opacity float32
	Color   RGBA
}

// Clip restricts drawing to a rounded rectangle. Each axis can be enabled
// separately; with a single axis the clip is an unbounded slab.
type Clip struct {
	Bounds   Rect
	Radii    CornerRadii
	EnabledX bool
	EnabledY bool
}

// Enabled reports whether either axis clips.
func (c Clip) Enabled() bool {
	return c.EnabledX || c.EnabledY
}

// NotchEdge selects the edge that carries a notch.
type NotchEdge uint32

// Notch edges. The numeric values are part of the block layout.
const (
	NotchNone NotchEdge = iota
	NotchTop
	NotchRight
	NotchBottom
	NotchLeft
)

// String returns the edge name as used in scene files.
func (e NotchEdge) String() string {
	switch e {
	case NotchNone:
		return "none"
	case NotchTop:
		return "top"
	case NotchRight:
		return "right"
	case NotchBottom:
		return "bottom"
	case NotchLeft:
		return "left"
	default:
		return fmt.Sprintf("NotchEdge(%d)", uint32(e))
	}
}

// NotchAnchor positions a notch along its edge.
type NotchAnchor uint32

// Notch anchors. Start is the left end of horizontal edges and the top end
// of vertical ones.
const (
	NotchStart NotchAnchor = iota
	NotchCenter
	NotchEnd
)

// String returns the anchor name as used in scene files.
func (a NotchAnchor) String() string {
	switch a {
	case NotchStart:
		return "start"
	case NotchCenter:
		return "center"
	case NotchEnd:
		return "end"
	default:
		return fmt.Sprintf("NotchAnchor(%d)", uint32(a))
	}
}

// Notch is an inward recess on one edge with a trapezoidal profile: full
// Depth across FlatWidth, easing to zero at TotalWidth. Offset shifts the
// notch along the edge from its anchor (positive is right or down).
type Notch struct {
	Edge       NotchEdge
	Depth      float32
	FlatWidth  float32
	TotalWidth float32
	Offset     float32
	Anchor     NotchAnchor
}

// Active reports whether the notch produces a visible recess.
func (n Notch) Active() bool {
	return n.Edge != NotchNone && n.Edge <= NotchLeft && n.Depth > 0 && n.TotalWidth > 0
}

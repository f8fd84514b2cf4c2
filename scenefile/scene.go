// Package scenefile reads and writes frost scenes in TOML.
//
// A scene is a target size, a background and an ordered list of
// components. Draw order is file order, so a frosted component shows
// everything listed before it:
//
//	width = 400
//	height = 300
//
//	[background]
//	from = "#1e3c72"
//	to = "#2a5298"
//	angle = 90
//
//	[[component]]
//	id = "card"
//	x = 50
//	y = 50
//	width = 200
//	height = 100
//	radius = 12
//	color = "white"
//
//	[component.border]
//	width = 2
//	position = "inside"
//	color = "#00000040"
//
//	[[component]]
//	id = "glass"
//	x = 120
//	y = 90
//	width = 160
//	height = 120
//	radius = 16
//
//	[component.frosted]
//	tint = "#ffffff80"
//	intensity = 0.35
//	blur = 12
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/frost"
)

// ErrInvalidScene is returned for scenes that parse but cannot be built.
var ErrInvalidScene = errors.New("scenefile: invalid scene")

// Scene is the TOML document.
type Scene struct {
	Width      int         `toml:"width"`
	Height     int         `toml:"height"`
	Background Background  `toml:"background,omitempty"`
	Components []Component `toml:"component"`

	// dir resolves relative image paths. Empty means the working directory.
	dir string
}

// Background fills the target before any component draws. Color, a
// gradient (From and To) and Image are mutually exclusive; an empty
// background leaves the target transparent.
//
// Gradients are linear along Angle unless Kind is "radial", in which case
// they run from Center (normalized, default the middle) out to Radius
// times the distance to the farthest corner.
type Background struct {
	Color  string    `toml:"color,omitempty"`
	From   string    `toml:"from,omitempty"`
	To     string    `toml:"to,omitempty"`
	Kind   string    `toml:"kind,omitempty"`
	Angle  float32   `toml:"angle,omitempty"` // degrees, 0 points right, 90 down
	Center []float32 `toml:"center,omitempty"`
	Radius float32   `toml:"radius,omitempty"`
	Image  string    `toml:"image,omitempty"`
	Scale  string    `toml:"scale,omitempty"`
}

// Component is one [[component]] table.
type Component struct {
	ID      string    `toml:"id,omitempty"`
	X       float32   `toml:"x"`
	Y       float32   `toml:"y"`
	Width   float32   `toml:"width"`
	Height  float32   `toml:"height"`
	Radius  float32   `toml:"radius,omitempty"`
	Radii   []float32 `toml:"radii,omitempty"` // top-left, top-right, bottom-left, bottom-right
	Opacity *float32  `toml:"opacity,omitempty"`

	Color   string   `toml:"color,omitempty"`
	Image   string   `toml:"image,omitempty"`
	Scale   string   `toml:"scale,omitempty"`
	Frosted *Frosted `toml:"frosted,omitempty"`

	Border *Border `toml:"border,omitempty"`
	Shadow *Shadow `toml:"shadow,omitempty"`
	Clip   *Clip   `toml:"clip,omitempty"`
	Notch  *Notch  `toml:"notch,omitempty"`
}

// Frosted is frosted glass content.
type Frosted struct {
	Tint      string   `toml:"tint,omitempty"`
	Intensity *float32 `toml:"intensity,omitempty"`
	Blur      *float32 `toml:"blur,omitempty"`
	Opacity   *float32 `toml:"opacity,omitempty"`
}

// Border is a component border.
type Border struct {
	Width    float32 `toml:"width"`
	Position string  `toml:"position,omitempty"`
	Color    string  `toml:"color"`
}

// Shadow is a drop shadow.
type Shadow struct {
	Offset  [2]float32 `toml:"offset"`
	Blur    float32    `toml:"blur"`
	Opacity *float32   `toml:"opacity,omitempty"`
	Color   string     `toml:"color,omitempty"`
}

// Clip is a clip region. Bounds are min x, min y, max x, max y. With
// neither X nor Y set, both axes clip.
type Clip struct {
	Bounds [4]float32 `toml:"bounds"`
	Radii  []float32  `toml:"radii,omitempty"`
	X      *bool      `toml:"x,omitempty"`
	Y      *bool      `toml:"y,omitempty"`
}

// Notch is an edge notch.
type Notch struct {
	Edge   string  `toml:"edge"`
	Depth  float32 `toml:"depth"`
	Flat   float32 `toml:"flat"`
	Total  float32 `toml:"total"`
	Offset float32 `toml:"offset,omitempty"`
	Anchor string  `toml:"anchor,omitempty"`
}

// Load reads a scene file. Relative image paths resolve against the file's
// directory.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Decode parses a scene. Unknown keys are rejected so typos do not go
// unnoticed.
func Decode(r io.Reader) (*Scene, error) {
	var s Scene
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&s); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("unknown keys:\n%s", serr.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return nil, err
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("size %dx%d: %w", s.Width, s.Height, ErrInvalidScene)
	}
	return &s, nil
}

// Encode writes the scene as TOML.
func (s *Scene) Encode(w io.Writer) error {
	return toml.NewEncoder(w).SetIndentTables(true).Encode(s)
}

// Build converts every component into a frost.VisualComponent.
func (s *Scene) Build() ([]frost.VisualComponent, error) {
	out := make([]frost.VisualComponent, 0, len(s.Components))
	for i := range s.Components {
		c := &s.Components[i]
		vc, err := c.build(s.dir)
		if err != nil {
			name := c.ID
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("component %s: %w", name, err)
		}
		out = append(out, vc)
	}
	return out, nil
}

// NewTarget returns a target of the scene size with the background drawn.
func (s *Scene) NewTarget() (*frost.Pixmap, error) {
	pm := frost.NewPixmap(s.Width, s.Height)
	bg := s.Background
	switch {
	case bg.Image != "":
		mode, err := frost.ParseScaleMode(bg.Scale)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		src, err := frost.LoadImage(s.resolve(bg.Image))
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		if err := pm.CopyFrom(frost.FitImage(src, s.Width, s.Height, mode)); err != nil {
			return nil, err
		}
	case bg.From != "" || bg.To != "":
		from, err := color("background from", bg.From)
		if err != nil {
			return nil, err
		}
		to, err := color("background to", bg.To)
		if err != nil {
			return nil, err
		}
		switch bg.Kind {
		case "", "linear":
			rad := bg.Angle * math32.Pi / 180
			return frost.NewLinearGradientPixmap(s.Width, s.Height, from, to, math32.Cos(rad), math32.Sin(rad)), nil
		case "radial":
			center := frost.Vec2{X: 0.5, Y: 0.5}
			switch len(bg.Center) {
			case 0:
			case 2:
				center = frost.Vec2{X: bg.Center[0], Y: bg.Center[1]}
			default:
				return nil, fmt.Errorf("background center needs 2 values, got %d: %w", len(bg.Center), ErrInvalidScene)
			}
			return frost.NewRadialGradientPixmap(s.Width, s.Height, from, to, center, bg.Radius), nil
		default:
			return nil, fmt.Errorf("unknown background kind %q: %w", bg.Kind, ErrInvalidScene)
		}
	case bg.Color != "":
		c, err := color("background", bg.Color)
		if err != nil {
			return nil, err
		}
		pm.Clear(c)
	}
	return pm, nil
}

// Render draws the scene with r and returns the result.
func (s *Scene) Render(r *frost.Renderer) (*frost.Pixmap, error) {
	comps, err := s.Build()
	if err != nil {
		return nil, err
	}
	target, err := s.NewTarget()
	if err != nil {
		return nil, err
	}
	if err := r.Render(target, comps); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *Scene) resolve(path string) string {
	if filepath.IsAbs(path) || s.dir == "" {
		return path
	}
	return filepath.Join(s.dir, path)
}

func (c *Component) build(dir string) (frost.VisualComponent, error) {
	vc := frost.VisualComponent{
		Position: frost.Vec2{X: c.X, Y: c.Y},
		Size:     frost.Vec2{X: c.Width, Y: c.Height},
		Radii:    frost.Uniform(c.Radius),
		Opacity:  valueOr(c.Opacity, 1),
	}
	if len(c.Radii) > 0 {
		r, err := radii(c.Radii)
		if err != nil {
			return vc, err
		}
		vc.Radii = r
	}

	if c.Border != nil {
		pos, err := parseName("border position", c.Border.Position, frost.BorderInside, frost.BorderCenter, frost.BorderOutside)
		if err != nil {
			return vc, err
		}
		col, err := color("border color", c.Border.Color)
		if err != nil {
			return vc, err
		}
		vc.Border = frost.Border{Width: c.Border.Width, Position: pos, Color: col}
	}

	if c.Shadow != nil {
		col := frost.RGBA{A: 1}
		if c.Shadow.Color != "" {
			var err error
			if col, err = color("shadow color", c.Shadow.Color); err != nil {
				return vc, err
			}
		}
		vc.Shadow = frost.Shadow{
			Offset:  frost.Vec2{X: c.Shadow.Offset[0], Y: c.Shadow.Offset[1]},
			Blur:    c.Shadow.Blur,
			Opacity: valueOr(c.Shadow.Opacity, 1),
			Color:   col,
		}
	}

	if c.Clip != nil {
		b := c.Clip.Bounds
		vc.Clip = frost.Clip{
			Bounds:   frost.Rect{Min: frost.Vec2{X: b[0], Y: b[1]}, Max: frost.Vec2{X: b[2], Y: b[3]}},
			EnabledX: c.Clip.X == nil && c.Clip.Y == nil || valueOr(c.Clip.X, false),
			EnabledY: c.Clip.X == nil && c.Clip.Y == nil || valueOr(c.Clip.Y, false),
		}
		if len(c.Clip.Radii) > 0 {
			r, err := radii(c.Clip.Radii)
			if err != nil {
				return vc, fmt.Errorf("clip: %w", err)
			}
			vc.Clip.Radii = r
		}
	}

	if c.Notch != nil {
		edge, err := parseName("notch edge", c.Notch.Edge, frost.NotchNone, frost.NotchTop, frost.NotchRight, frost.NotchBottom, frost.NotchLeft)
		if err != nil {
			return vc, err
		}
		anchor := frost.NotchCenter
		if c.Notch.Anchor != "" {
			if anchor, err = parseName("notch anchor", c.Notch.Anchor, frost.NotchStart, frost.NotchCenter, frost.NotchEnd); err != nil {
				return vc, err
			}
		}
		vc.Notch = frost.Notch{
			Edge:       edge,
			Depth:      c.Notch.Depth,
			FlatWidth:  c.Notch.Flat,
			TotalWidth: c.Notch.Total,
			Offset:     c.Notch.Offset,
			Anchor:     anchor,
		}
	}

	content, err := c.content(dir, vc.Border)
	if err != nil {
		return vc, err
	}
	vc.Content = content
	return vc, vc.Validate()
}

// content resolves the one content kind the component sets.
func (c *Component) content(dir string, border frost.Border) (frost.Content, error) {
	set := 0
	for _, ok := range []bool{c.Color != "", c.Image != "", c.Frosted != nil} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("color, image and frosted are exclusive: %w", ErrInvalidScene)
	}

	switch {
	case c.Image != "":
		mode, err := frost.ParseScaleMode(c.Scale)
		if err != nil {
			return nil, err
		}
		path := c.Image
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		src, err := frost.LoadImage(path)
		if err != nil {
			return nil, err
		}
		w, h := contentBox(c.Width, c.Height, border)
		return frost.ImageContent(src, w, h, mode), nil
	case c.Frosted != nil:
		g := frost.DefaultFrostedGlass()
		if c.Frosted.Tint != "" {
			tint, err := color("frosted tint", c.Frosted.Tint)
			if err != nil {
				return nil, err
			}
			g.Tint = tint
		}
		g.TintIntensity = valueOr(c.Frosted.Intensity, g.TintIntensity)
		g.BlurRadius = valueOr(c.Frosted.Blur, g.BlurRadius)
		g.Opacity = valueOr(c.Frosted.Opacity, g.Opacity)
		return g, nil
	case c.Color != "":
		col, err := color("color", c.Color)
		if err != nil {
			return nil, err
		}
		return frost.Solid{Color: col}, nil
	default:
		return frost.Solid{}, nil
	}
}

// contentBox returns the pixel size of the area image content is mapped
// onto.
func contentBox(w, h float32, b frost.Border) (int, int) {
	var inset float32
	switch b.Position {
	case frost.BorderInside:
		inset = b.Width
	case frost.BorderCenter:
		inset = b.Width / 2
	}
	iw := max(int(math.Round(float64(w-2*inset))), 0)
	ih := max(int(math.Round(float64(h-2*inset))), 0)
	return iw, ih
}

func color(what, s string) (frost.RGBA, error) {
	c, ok := frost.ParseColor(s)
	if !ok {
		return c, fmt.Errorf("%s %q: %w", what, s, ErrInvalidScene)
	}
	return c, nil
}

func radii(r []float32) (frost.CornerRadii, error) {
	var out frost.CornerRadii
	switch len(r) {
	case 1:
		return frost.Uniform(r[0]), nil
	case 4:
		copy(out[:], r)
		return out, nil
	}
	return out, fmt.Errorf("radii needs 1 or 4 values, got %d: %w", len(r), ErrInvalidScene)
}

// parseName matches s against the String names of values. An empty s
// selects the first value.
func parseName[T fmt.Stringer](what, s string, values ...T) (T, error) {
	if s == "" {
		return values[0], nil
	}
	for _, v := range values {
		if v.String() == s {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q: %w", what, s, ErrInvalidScene)
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

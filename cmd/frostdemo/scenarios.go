package main

import (
	"fmt"
	"sort"

	"github.com/gogpu/frost/scenefile"
)

func ptr[T any](v T) *T { return &v }

// scenarios are the built-in scenes, selectable with -scenario and
// writable as TOML with -dump.
var scenarios = map[string]func() *scenefile.Scene{
	// a is a plain red box on a transparent target.
	"a": func() *scenefile.Scene {
		return &scenefile.Scene{
			Width: 300, Height: 200,
			Components: []scenefile.Component{
				{ID: "box", X: 50, Y: 50, Width: 200, Height: 100, Color: "red"},
			},
		}
	},
	// b adds a 4px inside border.
	"b": func() *scenefile.Scene {
		return &scenefile.Scene{
			Width: 300, Height: 200,
			Components: []scenefile.Component{{
				ID: "box", X: 50, Y: 50, Width: 200, Height: 100, Color: "red",
				Border: &scenefile.Border{Width: 4, Position: "inside", Color: "blue"},
			}},
		}
	},
	// c is unblurred frosted glass over a solid backdrop.
	"c": func() *scenefile.Scene {
		return &scenefile.Scene{
			Width: 300, Height: 200,
			Background: scenefile.Background{Color: "#3366cc"},
			Components: []scenefile.Component{{
				ID: "glass", X: 50, Y: 50, Width: 200, Height: 100,
				Frosted: &scenefile.Frosted{Tint: "#ffffffff", Intensity: ptr[float32](0.5), Blur: ptr[float32](0)},
			}},
		}
	},
	"showcase": showcase,
	// halo is a frosted card over a radial backdrop.
	"halo": func() *scenefile.Scene {
		return &scenefile.Scene{
			Width: 400, Height: 300,
			Background: scenefile.Background{Kind: "radial", From: "gold", To: "indigo", Center: []float32{0.3, 0.4}},
			Components: []scenefile.Component{{
				ID: "glass", X: 80, Y: 70, Width: 240, Height: 160, Radius: 20,
				Frosted: &scenefile.Frosted{Tint: "#ffffff66", Blur: ptr[float32](10)},
				Shadow:  &scenefile.Shadow{Offset: [2]float32{0, 6}, Blur: 18, Opacity: ptr[float32](0.3)},
			}},
		}
	},
}

func showcase() *scenefile.Scene {
	s := &scenefile.Scene{
		Width: 640, Height: 400,
		Background: scenefile.Background{From: "#1e3c72", To: "#f7797d", Angle: 35},
	}
	// Stripes give the frosted panels something to blur.
	for i := range 8 {
		s.Components = append(s.Components, scenefile.Component{
			ID: fmt.Sprintf("stripe%d", i), X: float32(20 + i*78), Y: 0, Width: 30, Height: 400,
			Color: []string{"gold", "tomato", "teal", "violet"}[i%4],
		})
	}
	s.Components = append(s.Components,
		scenefile.Component{
			ID: "card", X: 40, Y: 40, Width: 240, Height: 140, Radius: 18, Color: "white",
			Border: &scenefile.Border{Width: 2, Position: "center", Color: "#00000033"},
			Shadow: &scenefile.Shadow{Offset: [2]float32{0, 8}, Blur: 16, Opacity: ptr[float32](0.35)},
		},
		scenefile.Component{
			ID: "tab", X: 320, Y: 40, Width: 280, Height: 140, Radii: []float32{24, 24, 4, 4},
			Color: "midnightblue",
			Notch: &scenefile.Notch{Edge: "top", Depth: 10, Flat: 40, Total: 80},
		},
		scenefile.Component{
			ID: "glass", X: 80, Y: 220, Width: 480, Height: 140, Radius: 28,
			Frosted: &scenefile.Frosted{Tint: "#ffffff80", Intensity: ptr[float32](0.3), Blur: ptr[float32](14)},
			Border:  &scenefile.Border{Width: 1.5, Position: "inside", Color: "#ffffff99"},
			Shadow:  &scenefile.Shadow{Offset: [2]float32{0, 6}, Blur: 20, Opacity: ptr[float32](0.25)},
		},
		scenefile.Component{
			ID: "pill", X: 200, Y: 260, Width: 240, Height: 60, Radius: 30, Color: "#ffffffcc",
			Clip: &scenefile.Clip{Bounds: [4]float32{80, 220, 560, 300}, Y: ptr(true)},
		},
	)
	return s
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

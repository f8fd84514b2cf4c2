// Package frost renders styled UI rectangles with signed distance fields.
//
// # Overview
//
// A VisualComponent describes one rectangle: per-corner radii, a border
// drawn inside, centered on or outside the edge, a drop shadow, a clip
// region, an edge notch, and content that is a solid color, an image, or
// frosted glass (a blurred, tinted copy of whatever was drawn beneath it).
//
// Each component is turned into an immutable ParameterBlock with every
// value clamped into a valid range. Shading is a pure function of the
// block, at most one bound image and the pixel position:
//
//   - Shape evaluates signed distances for the outer, content, shadow and
//     clip outlines, including the notch recess.
//   - Evaluator turns distances into anti-aliased coverage and layers
//     shadow, border and content.
//   - BlurKernel approximates a Gaussian blur with a bounded number of taps
//     for frosted content.
//
// # Quick Start
//
//	r := frost.NewRenderer()
//	defer r.Close()
//
//	target := frost.NewPixmap(400, 300)
//	card := frost.NewComponent(50, 50, 200, 100, frost.RGB(1, 0, 0))
//	card.Radii = frost.Uniform(12)
//	card.Border = frost.Border{Width: 4, Position: frost.BorderInside, Color: frost.Blue}
//
//	if err := r.Render(target, []frost.VisualComponent{card}); err != nil {
//	    log.Fatal(err)
//	}
//	target.SavePNG("card.png")
//
// # Frames and backdrops
//
// Frosted components sample a CapturedBackdrop taken right before they
// draw. Renderer.Render and Frame.Draw capture automatically; Frame.Capture
// and Frame.DrawBlock expose the steps for hosts that schedule their own
// draws. A backdrop is only valid in the frame that captured it.
//
// # GPU
//
// The same block layout (see BlockSize and ParameterBlock.MarshalBinary) is
// consumed by a WGSL shader. Import the gpu package to register a GPU
// accelerator; Render then runs on the GPU and falls back to the CPU when
// the accelerator fails:
//
//	import _ "github.com/gogpu/frost/gpu"
//
// # Logging
//
// frost is silent by default. Use SetLogger to route diagnostics to a
// log/slog logger.
package frost

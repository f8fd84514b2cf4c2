//go:build !nogpu

// Package gpu shades frost draw calls with a wgpu/hal render pipeline.
//
// Every draw binds its encoded ParameterBlock as a uniform, plus one
// texture: the bound image for image content, a copy of the target taken
// right before the draw for frosted content, or a transparent placeholder.
// The fragment shader in shaders/component.wgsl evaluates the same distances,
// coverage and blur as the CPU evaluator.
//
// A Render call uploads the target, records all passes into one command
// buffer, waits for the queue and reads the result back. The target is only
// written once the readback succeeded, so callers can fall back to the CPU
// on any error.
package gpu

// Package parallel runs the per-pixel shading of one draw across a fixed set
// of goroutines. Work is split into horizontal bands of rows; every band
// writes only its own rows, so bands need no synchronization beyond waiting
// for the whole pass to finish.
package parallel

// Package fill runs a breadth-first color fill over an N×N grid.
//
// The package defines the traversal and its run control:
//
//   - [Grid]: row-major cell indices with optional blocked cells
//   - [Engine]: validates a run configuration and starts traversals
//   - [Run]: per-run handle for pause, resume, cancel and wait
//   - [Ensemble]: independent traversals over copies of a grid, in parallel
//
// Every visited cell is handed to a [Sink] together with its color, in
// breadth-first order from the start cell. Colors come from a
// [palette.Generator], each one a bounded step from the previous color.
//
// # Thread Safety
//
// A traversal owns its queue and sets and runs on a single goroutine. An
// Engine allows at most one active run; [Engine.Start] returns
// [ErrAlreadyRunning] otherwise. The [Run] handle may be used from any
// goroutine.
package fill

// Package viz renders a fill live in the terminal.
//
// [Board] is the grid sink the traversal writes to; [Model] is a Bubble Tea
// program that draws the board, the run state and a color drift chart.
//
// # Key Bindings
//
//	Space - Pause/Resume the fill
//	C     - Cancel the fill, keeping colored cells
//	R     - Cancel, clear the grid and start a new fill
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz

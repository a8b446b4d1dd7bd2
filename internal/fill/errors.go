package fill

import "errors"

// Domain errors for fill operations.
var (
	// ErrInvalidGridSize indicates a grid with fewer than one column.
	ErrInvalidGridSize = errors.New("fill: grid size must be positive")

	// ErrStartIndexOutOfRange indicates a start cell outside [0, N*N).
	ErrStartIndexOutOfRange = errors.New("fill: start index out of range")

	// ErrCellOutOfRange indicates a cell index outside [0, N*N).
	ErrCellOutOfRange = errors.New("fill: cell index out of range")

	// ErrStartBlocked indicates a start cell that is blocked.
	ErrStartBlocked = errors.New("fill: start cell is blocked")

	// ErrAlreadyRunning indicates a start while another run is active on the engine.
	ErrAlreadyRunning = errors.New("fill: traversal already running")

	// ErrUnknownSelector indicates a start selector name that is not recognised.
	ErrUnknownSelector = errors.New("fill: unknown start selector")

	// ErrInvalidDelay indicates a negative step delay.
	ErrInvalidDelay = errors.New("fill: step delay must not be negative")

	// ErrInvalidRuns indicates an ensemble with fewer than one run.
	ErrInvalidRuns = errors.New("fill: ensemble needs at least one run")
)

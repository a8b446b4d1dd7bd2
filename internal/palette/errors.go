package palette

import "errors"

var (
	// ErrInvalidColorFormat indicates a string that is neither #RRGGBB nor rgb(a)(...).
	ErrInvalidColorFormat = errors.New("palette: invalid color format")

	// ErrParameterBounds indicates coherence or opacity outside [0, 1].
	ErrParameterBounds = errors.New("palette: parameter out of [0, 1]")
)

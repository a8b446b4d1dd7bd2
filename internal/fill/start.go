package fill

import (
	"fmt"
	"strings"
)

// Selector names the cell a traversal starts from.
type Selector string

const (
	TopLeft     Selector = "top-left"
	TopRight    Selector = "top-right"
	BottomLeft  Selector = "bottom-left"
	BottomRight Selector = "bottom-right"
	Center      Selector = "center"
)

// Selectors lists every supported start selector.
var Selectors = []Selector{TopLeft, TopRight, BottomLeft, BottomRight, Center}

func ParseSelector(s string) (Selector, error) {
	sel := Selector(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Selectors {
		if sel == known {
			return sel, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSelector, s)
}

// StartIndex maps a selector to a cell index of a cols×cols grid. For an even
// grid, center picks the cell below and right of the midpoint.
func StartIndex(cols int, sel Selector) (int, error) {
	if cols <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidGridSize, cols)
	}
	n := cols * cols
	switch sel {
	case TopLeft:
		return 0, nil
	case TopRight:
		return cols - 1, nil
	case BottomLeft:
		return n - cols, nil
	case BottomRight:
		return n - 1, nil
	case Center:
		if cols%2 == 0 {
			return n/2 + cols/2, nil
		}
		return n / 2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSelector, string(sel))
	}
}

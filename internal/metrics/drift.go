package metrics

import (
	"github.com/san-kum/chromafill/internal/fill"
	"github.com/san-kum/chromafill/internal/palette"
)

// ColorDrift is the mean RGB distance between successive colors of a run.
// Lower values mean a smoother fill.
type ColorDrift struct {
	name  string
	prev  *palette.Color
	sum   float64
	steps int
	max   float64
}

func NewColorDrift() *ColorDrift {
	return &ColorDrift{name: "color_drift"}
}

func (d *ColorDrift) Name() string { return d.name }

func (d *ColorDrift) Observe(a fill.Assignment) {
	c := a.Color
	if d.prev != nil {
		dist := d.prev.Distance(c)
		d.sum += dist
		d.steps++
		if dist > d.max {
			d.max = dist
		}
	}
	d.prev = &c
}

func (d *ColorDrift) Value() float64 {
	if d.steps == 0 {
		return 0
	}
	return d.sum / float64(d.steps)
}

// Max is the largest single step observed.
func (d *ColorDrift) Max() float64 { return d.max }

func (d *ColorDrift) Reset() {
	d.prev = nil
	d.sum = 0
	d.steps = 0
	d.max = 0
}

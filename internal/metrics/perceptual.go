package metrics

import (
	"github.com/san-kum/chromafill/internal/fill"
	"github.com/san-kum/chromafill/internal/palette"
)

// PerceptualDrift is the mean CIEDE2000 difference between successive
// colors, blended over a background first so that opacity counts the way it
// does on screen.
type PerceptualDrift struct {
	bg    palette.Color
	prev  *palette.Color
	sum   float64
	steps int
}

func NewPerceptualDrift(bg palette.Color) *PerceptualDrift {
	return &PerceptualDrift{bg: bg}
}

func (d *PerceptualDrift) Name() string { return "perceptual_drift" }

func (d *PerceptualDrift) Observe(a fill.Assignment) {
	c := a.Color.Blend(d.bg)
	if d.prev != nil {
		d.sum += d.prev.Perceptual(c)
		d.steps++
	}
	d.prev = &c
}

func (d *PerceptualDrift) Value() float64 {
	if d.steps == 0 {
		return 0
	}
	return d.sum / float64(d.steps)
}

func (d *PerceptualDrift) Reset() {
	d.prev = nil
	d.sum = 0
	d.steps = 0
}

package metrics

import "github.com/san-kum/chromafill/internal/fill"

// Coverage is the fraction of the grid colored so far.
type Coverage struct {
	name    string
	total   int
	colored int
}

func NewCoverage(total int) *Coverage {
	return &Coverage{
		name:  "coverage",
		total: total,
	}
}

func (c *Coverage) Name() string {
	return c.name
}

func (c *Coverage) Observe(a fill.Assignment) {
	c.colored++
}

func (c *Coverage) Value() float64 {
	if c.total == 0 {
		return 0
	}
	return float64(c.colored) / float64(c.total)
}

func (c *Coverage) Reset() {
	c.colored = 0
}

package metrics

import (
	"github.com/san-kum/chromafill/internal/fill"
	"github.com/san-kum/chromafill/internal/palette"
)

// MaxDepth is the breadth-first distance of the farthest colored cell.
type MaxDepth struct {
	depth int
}

func NewMaxDepth() *MaxDepth { return &MaxDepth{} }

func (m *MaxDepth) Name() string { return "max_depth" }

func (m *MaxDepth) Observe(a fill.Assignment) {
	if a.Depth > m.depth {
		m.depth = a.Depth
	}
}

func (m *MaxDepth) Value() float64 { return float64(m.depth) }
func (m *MaxDepth) Reset()         { m.depth = 0 }

// Default returns the metrics recorded for every stored run.
func Default(g *fill.Grid) []fill.Metric {
	return []fill.Metric{
		NewCoverage(g.Size()),
		NewColorDrift(),
		NewMaxDepth(),
		NewPerceptualDrift(palette.RGB(0, 0, 0)),
	}
}

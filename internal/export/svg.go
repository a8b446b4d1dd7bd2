package export

import (
	"bytes"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/san-kum/chromafill/internal/fill"
	"github.com/san-kum/chromafill/internal/palette"
)

const defaultCellSize = 16

// WriteGridSVG renders a fill as one rect per colored cell. Colors are
// composited over background, so the file shows what the live grid showed.
// Cells never colored keep the background.
func WriteGridSVG(w io.Writer, cols int, assignments []fill.Assignment, background palette.Color, cellSize int) {
	if cols <= 0 {
		return
	}
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}

	size := cols * cellSize
	bg := background.Blend(palette.RGB(0, 0, 0))

	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Title("chromafill")
	canvas.Rect(0, 0, size, size, canvas.RGB(int(bg.R), int(bg.G), int(bg.B)))

	canvas.Gstyle("shape-rendering:crispEdges")
	for _, a := range assignments {
		if a.Index < 0 || a.Index >= cols*cols {
			continue
		}
		row, col := a.Index/cols, a.Index%cols
		c := a.Color.Blend(bg)
		canvas.Rect(col*cellSize, row*cellSize, cellSize, cellSize, canvas.RGB(int(c.R), int(c.G), int(c.B)))
	}
	canvas.Gend()
	canvas.End()
}

// GridToSVG is WriteGridSVG into a string. An empty grid gives "".
func GridToSVG(cols int, assignments []fill.Assignment, background palette.Color, cellSize int) string {
	var buf bytes.Buffer
	WriteGridSVG(&buf, cols, assignments, background, cellSize)
	return buf.String()
}

// DriftToSVG draws a polyline of per-step values, such as the color distance
// between successive cells.
func DriftToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	xs := make([]int, len(values))
	ys := make([]int, len(values))
	last := float64(len(values) - 1)
	for i, v := range values {
		xs[i] = int(math.Round(float64(i) / last * float64(width)))
		ys[i] = int(math.Round(float64(height) - (v-lo)/span*float64(height)))
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#0a0a0a")
	canvas.Polyline(xs, ys, "fill:none;stroke-width:1.5;stroke:"+strokeColor)
	canvas.End()
	return buf.String()
}

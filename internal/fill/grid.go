package fill

import "fmt"

// Grid is an N×N matrix of cell indices in row-major order.
type Grid struct {
	cols    int
	blocked []bool
}

func NewGrid(cols int) (*Grid, error) {
	if cols <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGridSize, cols)
	}
	return &Grid{cols: cols, blocked: make([]bool, cols*cols)}, nil
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Size() int { return g.cols * g.cols }

// Index returns row*cols + col.
func (g *Grid) Index(row, col int) int { return row*g.cols + col }

// Coords returns the row and column of index.
func (g *Grid) Coords(index int) (row, col int) {
	return index / g.cols, index % g.cols
}

func (g *Grid) Contains(index int) bool {
	return index >= 0 && index < g.Size()
}

// Block marks a cell as an obstacle. Blocked cells are never visited.
func (g *Grid) Block(index int) error {
	if !g.Contains(index) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrCellOutOfRange, index, g.Size())
	}
	g.blocked[index] = true
	return nil
}

func (g *Grid) Blocked(index int) bool {
	return g.Contains(index) && g.blocked[index]
}

// BlockedCount returns the number of obstacle cells.
func (g *Grid) BlockedCount() int {
	n := 0
	for _, b := range g.blocked {
		if b {
			n++
		}
	}
	return n
}

// Neighbors returns the in-bounds, unblocked 4-neighbours of index in
// up, down, left, right order.
func (g *Grid) Neighbors(index int) []int {
	row, col := g.Coords(index)
	out := make([]int, 0, 4)

	try := func(r, c int) {
		if r < 0 || r >= g.cols || c < 0 || c >= g.cols {
			return
		}
		if id := g.Index(r, c); !g.blocked[id] {
			out = append(out, id)
		}
	}

	try(row-1, col)
	try(row+1, col)
	try(row, col-1)
	try(row, col+1)
	return out
}

// Clone returns an independent copy of the grid, obstacles included.
func (g *Grid) Clone() *Grid {
	c := &Grid{cols: g.cols, blocked: make([]bool, len(g.blocked))}
	copy(c.blocked, g.blocked)
	return c
}

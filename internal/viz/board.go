package viz

import (
	"sync"

	"github.com/san-kum/chromafill/internal/palette"
)

const driftCapacity = 600

// Board is the grid sink of the live view. The traversal goroutine writes to
// it while the UI goroutine reads snapshots, so every access is locked.
type Board struct {
	mu      sync.Mutex
	cols    int
	cells   []palette.Color
	colored []bool
	count   int
	last    *palette.Color
	drift   []float64
}

func NewBoard(cols int) *Board {
	b := &Board{}
	b.BuildGrid(cols)
	return b
}

// BuildGrid resizes the board to cols×cols. The cells are only reallocated
// when the size actually changes; otherwise the board is just cleared.
func (b *Board) BuildGrid(cols int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cols < 0 {
		cols = 0
	}
	if cols != b.cols || b.cells == nil {
		b.cols = cols
		b.cells = make([]palette.Color, cols*cols)
		b.colored = make([]bool, cols*cols)
	}
	b.clearLocked()
}

// ClearGrid uncolors every cell and forgets the drift history.
func (b *Board) ClearGrid() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearLocked()
}

func (b *Board) clearLocked() {
	for i := range b.colored {
		b.colored[i] = false
		b.cells[i] = palette.Color{}
	}
	b.count = 0
	b.last = nil
	b.drift = b.drift[:0]
}

// SetCellColor implements fill.Sink. Out-of-range indices are ignored.
func (b *Board) SetCellColor(index int, c palette.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || index >= len(b.cells) {
		return
	}
	if !b.colored[index] {
		b.count++
	}
	b.cells[index] = c
	b.colored[index] = true

	if b.last != nil {
		b.drift = append(b.drift, b.last.Distance(c))
		if len(b.drift) > driftCapacity {
			b.drift = b.drift[len(b.drift)-driftCapacity:]
		}
	}
	b.last = &c
}

func (b *Board) Cols() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cols
}

// Colored returns the number of colored cells.
func (b *Board) Colored() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Cell returns the color of index and whether it has been colored.
func (b *Board) Cell(index int) (palette.Color, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.cells) {
		return palette.Color{}, false
	}
	return b.cells[index], b.colored[index]
}

// Snapshot copies the cells and their colored flags.
func (b *Board) Snapshot() ([]palette.Color, []bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cells := make([]palette.Color, len(b.cells))
	colored := make([]bool, len(b.colored))
	copy(cells, b.cells)
	copy(colored, b.colored)
	return cells, colored
}

// Drift returns the distances between successive colors, newest last.
func (b *Board) Drift() []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]float64, len(b.drift))
	copy(out, b.drift)
	return out
}

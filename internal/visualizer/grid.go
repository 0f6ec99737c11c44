package visualizer

import (
	"strings"
	"sync"
	"sync/atomic"
)

var gridHandles atomic.Uintptr

// Grid is an in-memory Actor. It records painted cells and grid visibility
// so headless callers (CLI previews, tests) can inspect a drawn frame.
type Grid struct {
	mu          sync.Mutex
	handle      uintptr
	rows, cols  int
	cells       []Color
	gridVisible bool
	gridColor   Color
}

// NewGrid returns an empty grid with a process-unique handle.
func NewGrid() *Grid {
	return &Grid{handle: gridHandles.Add(1)}
}

func (g *Grid) Handle() uintptr { return g.handle }

func (g *Grid) Resize(rows, cols int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rows, g.cols = max(rows, 0), max(cols, 0)
	g.cells = make([]Color, g.rows*g.cols)
}

// SetCell ignores coordinates outside the current size.
func (g *Grid) SetCell(row, col int, c Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row*g.cols+col] = c
}

func (g *Grid) SetGrid(visible bool, c Color) {
	g.mu.Lock()
	g.gridVisible, g.gridColor = visible, c
	g.mu.Unlock()
}

// Cell returns the color at row, col; zero outside the grid.
func (g *Grid) Cell(row, col int) Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return Color{}
	}
	return g.cells[row*g.cols+col]
}

// Size returns the current dimensions.
func (g *Grid) Size() (rows, cols int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rows, g.cols
}

// GridLines reports whether grid lines are shown and their color.
func (g *Grid) GridLines() (bool, Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gridVisible, g.gridColor
}

// Render returns one line per row, mapping each distinct color to a rune
// from palette in order of first appearance.
func (g *Grid) Render(palette string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	runes := []rune(palette)
	if len(runes) == 0 {
		runes = []rune(".#")
	}
	seen := map[Color]rune{}
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			col := g.cells[r*g.cols+c]
			ch, ok := seen[col]
			if !ok {
				ch = runes[min(len(seen), len(runes)-1)]
				seen[col] = ch
			}
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

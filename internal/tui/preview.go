package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vizd/internal/visualizer"
)

// RenderGrid draws every cell of g as two blank columns on its color, and
// overlays boundary lines with '+' in the grid line color.
func RenderGrid(g *visualizer.Grid, overlay []visualizer.Line) string {
	rows, cols := g.Size()
	_, gridColor := g.GridLines()
	onLine := make(map[[2]int]bool)
	for _, l := range overlay {
		for _, p := range linePoints(l) {
			onLine[p] = true
		}
	}
	styles := map[visualizer.Color]lipgloss.Style{}
	style := func(c visualizer.Color) lipgloss.Style {
		s, ok := styles[c]
		if !ok {
			s = lipgloss.NewStyle().Background(lipgloss.Color(hex(c)))
			styles[c] = s
		}
		return s
	}
	mark := lipgloss.NewStyle().Foreground(lipgloss.Color(hex(gridColor))).Bold(true)
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := "  "
			if onLine[[2]int{r, c}] {
				cell = mark.Inherit(style(g.Cell(r, c))).Render("+ ")
			} else {
				cell = style(g.Cell(r, c)).Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func hex(c visualizer.Color) string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// linePoints returns the cells of an axis-aligned boundary line.
func linePoints(l visualizer.Line) [][2]int {
	var pts [][2]int
	x0, x1 := min(l.X1, l.X2), max(l.X1, l.X2)
	y0, y1 := min(l.Y1, l.Y2), max(l.Y1, l.Y2)
	switch {
	case x0 == x1:
		for y := y0; y <= y1; y++ {
			pts = append(pts, [2]int{x0, y})
		}
	case y0 == y1:
		for x := x0; x <= x1; x++ {
			pts = append(pts, [2]int{x, y0})
		}
	default:
		pts = append(pts, [2]int{l.X1, l.Y1}, [2]int{l.X2, l.Y2})
	}
	return pts
}

package visualizer

import "fmt"

// StepIndex identifies a simulation step.
type StepIndex int

// Line is a segment in grid coordinates (row, column).
type Line struct {
	X1, Y1, X2, Y2 int
}

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGBA packs c as 0xRRGGBBAA.
func (c Color) RGBA() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// ColorFromRGBA unpacks a 0xRRGGBBAA value.
func ColorFromRGBA(v uint32) Color {
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A) }

// DrawSettings are the view settings passed explicitly into Draw and Refresh.
type DrawSettings struct {
	Grid       Color
	Background Color
	// NoValue paints cells whose state has no color mapping.
	NoValue  Color
	ShowGrid bool
}

// DefaultDrawSettings returns the settings used when a caller supplies none.
func DefaultDrawSettings() DrawSettings {
	return DrawSettings{
		Grid:       Color{R: 80, G: 80, B: 80, A: 255},
		Background: Color{A: 255},
		NoValue:    Color{R: 255, G: 255, B: 255, A: 255},
		ShowGrid:   true,
	}
}

// RenderTarget is the rendering collaborator's scene. Native models receive
// the raw handle only.
type RenderTarget interface {
	Handle() uintptr
}

// Actor is the grid primitive a model paints into.
type Actor interface {
	Handle() uintptr
	Resize(rows, cols int)
	SetCell(row, col int, c Color)
}

// GridDrawer is implemented by actors able to show cell grid lines.
type GridDrawer interface {
	SetGrid(visible bool, c Color)
}

// Handle is a RenderTarget wrapping an opaque collaborator handle.
type Handle uintptr

func (h Handle) Handle() uintptr { return uintptr(h) }

package visualizer

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// CellSpec describes a cell type C for Stage.
type CellSpec[C any] struct {
	// Parse decodes one token of a step file row.
	Parse func(token string) (C, error)
	// Color maps a cell to its display color; false paints DrawSettings.NoValue.
	Color func(cell C, s DrawSettings) (Color, bool)
}

// Stage is an Impl for grid models whose per-node state is read from step
// files. It is not safe for concurrent use; each instance has one owner.
type Stage[C any] struct {
	spec       CellSpec[C]
	dimX, dimY int
	cells      []C
	nodes      []nodeIndex
}

// NewStage returns a Stage for cells described by spec.
func NewStage[C any](spec CellSpec[C]) *Stage[C] {
	return &Stage[C]{spec: spec}
}

func (s *Stage[C]) InitMatrix(dimX, dimY int) {
	s.dimX, s.dimY = max(dimX, 0), max(dimY, 0)
	s.cells = make([]C, s.dimX*s.dimY)
}

func (s *Stage[C]) PrepareStage(nNodeX, nNodeY int) {
	s.nodes = make([]nodeIndex, max(nNodeX, 0)*max(nNodeY, 0))
}

func (s *Stage[C]) ClearStage() {
	clear(s.cells)
	for i := range s.nodes {
		s.nodes[i] = nodeIndex{}
	}
}

func (s *Stage[C]) ReadStepsOffsets(nNodeX, nNodeY int, filename string) error {
	if n := nNodeX * nNodeY; n != len(s.nodes) {
		s.PrepareStage(nNodeX, nNodeY)
	}
	if len(s.nodes) == 0 {
		return fmt.Errorf("read step offsets: no nodes (%dx%d)", nNodeX, nNodeY)
	}
	for n := range s.nodes {
		idx, err := indexNodeFile(NodeFile(filename, n))
		if err != nil {
			return fmt.Errorf("index node %d: %w", n, err)
		}
		s.nodes[n] = idx
	}
	return nil
}

// LoadStepState reads step from every node into a scratch copy of the matrix
// and commits it only when all nodes parse, so a failed load leaves the
// previous step in place.
func (s *Stage[C]) LoadStepState(step StepIndex) ([]Line, error) {
	if len(s.nodes) == 0 || s.nodes[0].offsets == nil {
		return nil, errors.New("load step: step offsets not read")
	}
	next := slices.Clone(s.cells)
	lines := make([]Line, 0, 4*len(s.nodes))
	for n, node := range s.nodes {
		off, ok := node.offsets[step]
		if !ok {
			return nil, stepNotFoundError{step: step, node: n}
		}
		h, err := readRecord(node.path, off, func(h stepHeader, row int, tokens []string) error {
			x := h.Region.X0 + row
			for col, tok := range tokens {
				y := h.Region.Y0 + col
				if x < 0 || x >= s.dimX || y < 0 || y >= s.dimY {
					return fmt.Errorf("cell (%d,%d) outside %dx%d matrix", x, y, s.dimX, s.dimY)
				}
				c, err := s.spec.Parse(tok)
				if err != nil {
					return fmt.Errorf("col %d: %w", col, err)
				}
				next[x*s.dimY+y] = c
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		lines = append(lines, h.Region.Boundary()...)
	}
	s.cells = next
	return lines, nil
}

// Draw sizes actor to rows by cols and paints every cell. A nil actor is a
// no-op.
func (s *Stage[C]) Draw(rows, cols int, _ RenderTarget, actor Actor, settings DrawSettings) {
	if actor == nil {
		return
	}
	actor.Resize(rows, cols)
	if g, ok := actor.(GridDrawer); ok {
		g.SetGrid(settings.ShowGrid, settings.Grid)
	}
	s.paint(rows, cols, actor, settings)
}

// Refresh repaints cells without resizing the actor.
func (s *Stage[C]) Refresh(rows, cols int, actor Actor, settings DrawSettings) {
	if actor == nil {
		return
	}
	s.paint(rows, cols, actor, settings)
}

func (s *Stage[C]) paint(rows, cols int, actor Actor, settings DrawSettings) {
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			color := settings.Background
			if cell, ok := s.Cell(r, c); ok {
				if v, ok := s.spec.Color(cell, settings); ok {
					color = v
				} else {
					color = settings.NoValue
				}
			}
			actor.SetCell(r, c, color)
		}
	}
}

// AvailableSteps returns the steps indexed in every node, ascending.
func (s *Stage[C]) AvailableSteps() []StepIndex {
	if len(s.nodes) == 0 {
		return nil
	}
	var out []StepIndex
	for step := range s.nodes[0].offsets {
		all := true
		for _, n := range s.nodes[1:] {
			if _, ok := n.offsets[step]; !ok {
				all = false
				break
			}
		}
		if all {
			out = append(out, step)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Cell returns the cell at row x, column y.
func (s *Stage[C]) Cell(x, y int) (C, bool) {
	var zero C
	if x < 0 || x >= s.dimX || y < 0 || y >= s.dimY {
		return zero, false
	}
	return s.cells[x*s.dimY+y], true
}

// Dims returns the matrix dimensions.
func (s *Stage[C]) Dims() (int, int) { return s.dimX, s.dimY }

func (s *Stage[C]) Close() error {
	s.cells = nil
	s.nodes = nil
	return nil
}

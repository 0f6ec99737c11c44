package models

import (
	"fmt"
	"strconv"

	"vizd/internal/visualizer"
)

// Ball cell states.
const (
	ballEmpty    = 0
	ballOccupied = 1
	ballWall     = 2
)

var ballPalette = map[int]visualizer.Color{
	ballEmpty:    {R: 255, G: 255, B: 255, A: 255},
	ballOccupied: {R: 200, G: 30, B: 30, A: 255},
	ballWall:     {R: 40, G: 40, B: 40, A: 255},
}

// NewBallCell returns a ballcell stage. Each cell holds an integer state.
func NewBallCell() *visualizer.Stage[int] {
	return visualizer.NewStage(visualizer.CellSpec[int]{
		Parse: parseBallState,
		Color: func(state int, _ visualizer.DrawSettings) (visualizer.Color, bool) {
			c, ok := ballPalette[state]
			return c, ok
		},
	})
}

func parseBallState(tok string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("ballcell state %q: %w", tok, err)
	}
	return v, nil
}

package models

import (
	"fmt"
	"math"
	"strconv"

	"vizd/internal/visualizer"
)

// SciddicaTMaxHeight is the debris height mapped to the brightest color.
const SciddicaTMaxHeight = 10.0

// NewSciddicaT returns a sciddicat stage. Each cell holds a debris height;
// zero height shows the background, negative or non-finite heights have no value.
func NewSciddicaT() *visualizer.Stage[float64] {
	return visualizer.NewStage(visualizer.CellSpec[float64]{
		Parse: parseHeight,
		Color: heightColor,
	})
}

func parseHeight(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("sciddicat height %q: %w", tok, err)
	}
	return v, nil
}

func heightColor(h float64, s visualizer.DrawSettings) (visualizer.Color, bool) {
	switch {
	case math.IsNaN(h) || math.IsInf(h, 0) || h < 0:
		return visualizer.Color{}, false
	case h == 0:
		return s.Background, true
	}
	t := math.Min(h/SciddicaTMaxHeight, 1)
	// brown at low debris, yellow at max
	return visualizer.Color{
		R: uint8(120 + t*135),
		G: uint8(60 + t*180),
		B: uint8(20 * (1 - t)),
		A: 255,
	}, true
}

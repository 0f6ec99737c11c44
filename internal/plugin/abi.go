package plugin

import (
	"errors"
	"fmt"

	"vizd/internal/visualizer"
)

// EntrySymbol is the exported function returning the plugin table.
const (
	EntrySymbol = "viz_plugin_entry_v1"
	ABIVersion  = 1
)

// pluginTable mirrors viz_plugin_v1.
type pluginTable struct {
	ABIVersion       uint32
	Reserved         uint32
	Create           uintptr
	Destroy          uintptr
	InitMatrix       uintptr
	PrepareStage     uintptr
	ClearStage       uintptr
	ReadStepsOffsets uintptr
	ReadStageState   uintptr
	Draw             uintptr
	Refresh          uintptr
	AvailableSteps   uintptr
}

func validateTable(t *pluginTable) error {
	if t == nil {
		return errors.New("entry returned a null table")
	}
	if t.ABIVersion != ABIVersion {
		return fmt.Errorf("abi version %d, host supports %d", t.ABIVersion, ABIVersion)
	}
	fns := []struct {
		name string
		ptr  uintptr
	}{
		{"create", t.Create},
		{"destroy", t.Destroy},
		{"init_matrix", t.InitMatrix},
		{"prepare_stage", t.PrepareStage},
		{"clear_stage", t.ClearStage},
		{"read_steps_offsets", t.ReadStepsOffsets},
		{"read_stage_state", t.ReadStageState},
		{"draw", t.Draw},
		{"refresh", t.Refresh},
		{"available_steps", t.AvailableSteps},
	}
	for _, f := range fns {
		if f.ptr == 0 {
			return fmt.Errorf("incomplete table: %s is null", f.name)
		}
	}
	return nil
}

// cLine mirrors viz_line.
type cLine struct{ X1, Y1, X2, Y2 int32 }

func (l cLine) line() visualizer.Line {
	return visualizer.Line{X1: int(l.X1), Y1: int(l.Y1), X2: int(l.X2), Y2: int(l.Y2)}
}

// cColor mirrors viz_color.
type cColor struct{ R, G, B, A uint8 }

func toCColor(c visualizer.Color) cColor { return cColor{R: c.R, G: c.G, B: c.B, A: c.A} }

// cDrawSettings mirrors viz_draw_settings.
type cDrawSettings struct {
	Grid       cColor
	Background cColor
	NoValue    cColor
	ShowGrid   int32
}

func toCSettings(s visualizer.DrawSettings) cDrawSettings {
	c := cDrawSettings{Grid: toCColor(s.Grid), Background: toCColor(s.Background), NoValue: toCColor(s.NoValue)}
	if s.ShowGrid {
		c.ShowGrid = 1
	}
	return c
}

// cHost mirrors viz_host_v1.
type cHost struct {
	Ctx         uintptr
	ActorHandle uintptr
	Resize      uintptr
	SetCell     uintptr
}

// vtable is the Go-callable view of a plugin table.
type vtable struct {
	create           func() uintptr
	destroy          func(self uintptr)
	initMatrix       func(self uintptr, dimX, dimY int32)
	prepareStage     func(self uintptr, nNodeX, nNodeY int32)
	clearStage       func(self uintptr)
	readStepsOffsets func(self uintptr, nNodeX, nNodeY int32, filename string) int32
	readStageState   func(self uintptr, step int32, out *cLine, capacity int32) int32
	draw             func(self uintptr, rows, cols int32, renderer uintptr, host *cHost, settings *cDrawSettings)
	refresh          func(self uintptr, rows, cols int32, host *cHost, settings *cDrawSettings)
	availableSteps   func(self uintptr, out *int32, capacity int32) int32
}

// Package models holds the models compiled into the daemon.
package models

import (
	"fmt"

	"vizd/internal/visualizer"
)

// Built-in model names.
const (
	BallCell  = "ballcell"
	SciddicaT = "sciddicat"
)

// Names lists the built-in models in registration order.
func Names() []string { return []string{BallCell, SciddicaT} }

// RegisterBuiltins registers every built-in model in reg.
func RegisterBuiltins(reg *visualizer.Registry) error {
	ctors := map[string]visualizer.Constructor{
		BallCell:  visualizer.Bind(BallCell, NewBallCell),
		SciddicaT: visualizer.Bind(SciddicaT, NewSciddicaT),
	}
	for _, name := range Names() {
		if err := reg.Register(name, ctors[name]); err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
	}
	return nil
}

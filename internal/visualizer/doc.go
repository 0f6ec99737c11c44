// Package visualizer defines the uniform interface every simulation model is
// driven through, whether built into the binary or loaded from a compiled
// plugin, and the registry mapping model names to constructors.
//
// Implementations satisfy Impl. Bind wraps an implementation constructor in
// the generic Adapter, which adds the model name and yields a Visualizer.
// Stage is a reusable Impl for grid models whose cells are parsed from
// per-node step files; built-in models only supply a CellSpec.
package visualizer

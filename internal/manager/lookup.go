package manager

import (
	"sort"

	"vizd/internal/visualizer"
	"vizd/pkg/types"
)

// Lookup classifies name without creating anything.
func (m *Manager) Lookup(name string) Resolution {
	m.mu.RLock()
	d := m.descriptors[name]
	var snap ModelDescriptor
	if d != nil {
		snap = *d
	}
	m.mu.RUnlock()

	if d == nil {
		// Registered behind the manager's back; treat as compiled into the host.
		if m.registry.Has(name) {
			return Resolution{Tag: Builtin, Descriptor: *newDescriptor(name, OriginBuiltin, StateLoaded)}
		}
		return Resolution{Tag: Unknown, Descriptor: ModelDescriptor{Name: name}}
	}
	return Resolution{Tag: tagFor(snap), Descriptor: snap}
}

func tagFor(d ModelDescriptor) ResolutionTag {
	if d.Origin == OriginBuiltin {
		return Builtin
	}
	switch {
	case d.State == StateLoaded:
		return Loaded
	case d.State == StateCompiled:
		return Compiled
	case d.Failed():
		return Failed
	default:
		return Pending
	}
}

// Create returns a new visualizer for name from the registry.
func (m *Manager) Create(name string) (visualizer.Visualizer, error) {
	return m.registry.Create(name)
}

// Model returns the wire view of one model.
func (m *Manager) Model(name string) (types.Model, error) {
	r := m.Lookup(name)
	if r.Tag == Unknown {
		return types.Model{}, visualizer.ErrUnknownModel(name)
	}
	return r.Descriptor.toAPI(m.registry.Has(name)), nil
}

// ListModels returns every known model sorted by name.
func (m *Manager) ListModels() []types.Model {
	m.mu.RLock()
	snaps := make(map[string]ModelDescriptor, len(m.descriptors))
	for name, d := range m.descriptors {
		snaps[name] = *d
	}
	m.mu.RUnlock()
	for _, name := range m.registry.ListModels() {
		if _, ok := snaps[name]; !ok {
			snaps[name] = *newDescriptor(name, OriginBuiltin, StateLoaded)
		}
	}
	out := make([]types.Model, 0, len(snaps))
	for name, d := range snaps {
		out = append(out, d.toAPI(m.registry.Has(name)))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

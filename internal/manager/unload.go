package manager

import (
	"errors"

	"vizd/internal/visualizer"
)

// Unload unmaps every module loaded for a dynamic model and unregisters it.
// Idle older generations are unmapped even when another generation refuses.
// The newest module backs the registered constructor, so it is only unmapped
// once every older one is gone; until then the model stays registered and
// Loaded. On success the descriptor is replaced by a fresh NotCompiled one
// keeping the source.
func (m *Manager) Unload(name string) (ModelDescriptor, error) {
	m.mu.Lock()
	d := m.descriptors[name]
	if d == nil {
		m.mu.Unlock()
		return ModelDescriptor{}, visualizer.ErrUnknownModel(name)
	}
	if _, busy := m.compiling[name]; busy {
		m.mu.Unlock()
		return *d, ErrCompileInProgress(name)
	}
	mods := m.modules[name]
	if d.Origin == OriginBuiltin || len(mods) == 0 {
		snap := *d
		m.mu.Unlock()
		return snap, notUnloadableError{name: name, state: snap.State}
	}

	older, current := mods[:len(mods)-1], mods[len(mods)-1]
	var kept []Module
	var errs []error
	for _, mod := range older {
		if err := mod.Unload(); err != nil {
			kept = append(kept, mod)
			errs = append(errs, err)
			continue
		}
		loadedModules.Dec()
	}
	if len(kept) > 0 {
		kept = append(kept, current)
	} else if err := current.Unload(); err != nil {
		kept = append(kept, current)
		errs = append(errs, err)
	} else {
		loadedModules.Dec()
	}
	if len(kept) > 0 {
		m.modules[name] = kept
		snap := *d
		m.mu.Unlock()
		err := errors.Join(errs...)
		m.log.Info().Str("model", name).Int("in_use", len(kept)).Msg("unload refused")
		m.publisher.Publish(Event{Name: EventUnloadRefused, Model: name, Fields: map[string]any{"in_use": len(kept)}})
		return snap, err
	}

	delete(m.modules, name)
	m.registry.Unregister(name)
	fresh := newDescriptor(name, OriginDynamic, StateNotCompiled)
	fresh.SourcePath = d.SourcePath
	m.descriptors[name] = fresh
	snap := *fresh
	m.mu.Unlock()

	m.log.Info().Str("model", name).Int("modules", len(mods)).Msg("model unloaded")
	m.publisher.Publish(Event{Name: EventUnloadDone, Model: name, Fields: map[string]any{"modules": len(mods)}})
	return snap, nil
}

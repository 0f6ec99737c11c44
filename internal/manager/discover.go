package manager

import (
	"vizd/internal/catalog"
)

// Discover scans the plugins directory and records a NotCompiled descriptor
// for every source not yet known. Sources of models that were never compiled
// are refreshed. It returns the names added.
func (m *Manager) Discover() ([]string, error) {
	if m.pluginsDir == "" {
		return nil, nil
	}
	srcs, err := catalog.Scan(m.pluginsDir)
	if err != nil {
		return nil, err
	}
	var added []string
	m.mu.Lock()
	for _, s := range srcs {
		d := m.descriptors[s.Name]
		switch {
		case d == nil:
			d = newDescriptor(s.Name, OriginDynamic, StateNotCompiled)
			d.SourcePath = s.Path
			m.descriptors[s.Name] = d
			added = append(added, s.Name)
		case d.Origin == OriginDynamic && d.State == StateNotCompiled:
			d.SourcePath = s.Path
		}
	}
	m.mu.Unlock()
	m.log.Info().Str("dir", m.pluginsDir).Int("sources", len(srcs)).Int("added", len(added)).Msg("plugins discovered")
	return added, nil
}

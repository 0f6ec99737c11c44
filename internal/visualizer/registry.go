package visualizer

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry maps model names to their most recently registered constructor.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: map[string]Constructor{}}
}

// Register maps name to ctor, replacing any previous mapping. Instances
// created from the previous constructor are not affected.
func (r *Registry) Register(name string, ctor Constructor) error {
	if name == "" {
		return errors.New("register: empty model name")
	}
	if ctor == nil {
		return errors.New("register: nil constructor for " + name)
	}
	r.mu.Lock()
	r.ctors[name] = ctor
	r.mu.Unlock()
	return nil
}

// Unregister removes name. It reports whether a mapping existed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ctors[name]
	delete(r.ctors, name)
	return ok
}

// Create returns a new instance of name or an error satisfying IsUnknownModel.
// An instance reporting a construction failure through Err is closed and the
// failure returned instead.
func (r *Registry) Create(name string) (Visualizer, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownModel(name)
	}
	v := ctor()
	if e, ok := v.(interface{ Err() error }); ok {
		if err := e.Err(); err != nil {
			_ = v.Close()
			return nil, fmt.Errorf("create %s: %w", name, err)
		}
	}
	return v, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[name]
	return ok
}

// ListModels returns the registered names sorted ascending.
func (r *Registry) ListModels() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.ctors))
	for n := range r.ctors {
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

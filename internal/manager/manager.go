package manager

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"vizd/internal/build"
	"vizd/internal/toolchain"
	"vizd/internal/visualizer"
)

// Compiler runs one compile attempt. *build.Builder implements it.
type Compiler interface {
	Compile(ctx context.Context, req build.Request, progress build.ProgressFunc) build.Result
}

// Module is a mapped artifact that can construct visualizers.
type Module interface {
	Bind(modelName string) visualizer.Constructor
	Unload() error
	Path() string
	Live() int
}

// Loader maps a successful compile result into a Module.
type Loader interface {
	Load(res build.Result) (Module, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(res build.Result) (Module, error)

func (f LoaderFunc) Load(res build.Result) (Module, error) { return f(res) }

// Manager owns every ModelDescriptor together with the compiler, the loader
// and the registry. It is safe for concurrent use; compiles of distinct
// models run in parallel.
type Manager struct {
	mu          sync.RWMutex
	descriptors map[string]*ModelDescriptor
	// modules loaded per model, oldest first. Older generations stay mapped
	// while instances created from them are alive.
	modules map[string][]Module
	// generation is the last artifact generation handed out per model.
	generation map[string]int
	compiling  map[string]struct{}
	lastErr    string

	compiler     Compiler
	loader       Loader
	registry     *visualizer.Registry
	pluginsDir   string
	artifactsDir string
	standard     string
	toolchain    toolchain.Source
	preferred    string
	// lastToolchain is the descriptor used by the most recent compile.
	lastToolchain *toolchain.Descriptor

	publisher EventPublisher
	log       zerolog.Logger
	startTime time.Time
	stats     counters
}

type counters struct {
	compiles, compileFailures, loads, loadFailures uint64
}

// New constructs a Manager. Models already present in cfg.Registry are
// recorded as built-in and Loaded.
func New(cfg Config) *Manager {
	m := &Manager{
		descriptors:  make(map[string]*ModelDescriptor),
		modules:      make(map[string][]Module),
		generation:   make(map[string]int),
		compiling:    make(map[string]struct{}),
		compiler:     cfg.Compiler,
		loader:       cfg.Loader,
		registry:     cfg.Registry,
		pluginsDir:   cfg.PluginsDir,
		artifactsDir: cfg.ArtifactsDir,
		standard:     cfg.Standard,
		toolchain:    cfg.Toolchain,
		preferred:    cfg.Preferred,
		log:          zerolog.Nop(),
		startTime:    time.Now(),
	}
	if cfg.Logger != nil {
		m.log = cfg.Logger.With().Str("component", "manager").Logger()
	}
	if m.registry == nil {
		m.registry = visualizer.NewRegistry()
	}
	if m.artifactsDir == "" {
		m.artifactsDir = defaultArtifactsDir
	}
	if m.loader == nil {
		m.loader = LoaderFunc(func(res build.Result) (Module, error) {
			return nil, errNoLoader(res.OutputFile)
		})
	}
	pubs := multiPublisher{logPublisher{m: m}}
	if cfg.Publisher != nil {
		pubs = append(pubs, cfg.Publisher)
	}
	m.publisher = pubs
	for _, name := range m.registry.ListModels() {
		m.descriptors[name] = newDescriptor(name, OriginBuiltin, StateLoaded)
	}
	return m
}

// Registry returns the registry the manager registers dynamic models into.
func (m *Manager) Registry() *visualizer.Registry { return m.registry }

// ArtifactsDir returns the directory versioned artifacts are written to.
func (m *Manager) ArtifactsDir() string { return m.artifactsDir }

// Ready reports whether at least one model can be created.
func (m *Manager) Ready() bool { return len(m.registry.ListModels()) > 0 }

func (m *Manager) setLastError(err error) {
	if err == nil {
		return
	}
	m.mu.Lock()
	m.lastErr = err.Error()
	m.mu.Unlock()
}

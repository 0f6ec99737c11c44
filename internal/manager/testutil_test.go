package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"vizd/internal/build"
	"vizd/internal/models"
	"vizd/internal/plugin"
	"vizd/internal/visualizer"
)

// fakeCompiler writes the requested artifact unless fail is set. When gate
// is non-nil each call signals started and blocks until gate is closed.
type fakeCompiler struct {
	fail    bool
	calls   atomic.Int32
	started chan string
	gate    chan struct{}

	mu   sync.Mutex
	reqs []build.Request
}

func (f *fakeCompiler) Compile(ctx context.Context, req build.Request, progress build.ProgressFunc) build.Result {
	f.calls.Add(1)
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.gate != nil {
		f.started <- req.SourceFile
		<-f.gate
	}
	res := build.Result{SourceFile: req.SourceFile, OutputFile: req.OutputFile, Command: "fake " + req.SourceFile}
	if f.fail {
		res.ExitCode = 1
		res.Stderr = "error: boom"
		res.Err = build.ErrCompile(1, res.Stderr)
		return res
	}
	if err := os.MkdirAll(filepath.Dir(req.OutputFile), 0o755); err != nil {
		res.Err = err
		return res
	}
	if err := os.WriteFile(req.OutputFile, []byte("artifact"), 0o644); err != nil {
		res.Err = err
		return res
	}
	if progress != nil {
		progress(build.Progress{Kind: build.ProgressSummary, Message: "Compilation successful: " + req.OutputFile})
	}
	res.Success = true
	return res
}

func (f *fakeCompiler) lastRequest() build.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reqs[len(f.reqs)-1]
}

// fakeModule binds built-in stages and refuses unload while live > 0.
type fakeModule struct {
	path     string
	live     atomic.Int32
	unloaded atomic.Bool
}

func (f *fakeModule) Bind(name string) visualizer.Constructor {
	return visualizer.Bind(name, models.NewBallCell)
}

func (f *fakeModule) Unload() error {
	if n := f.live.Load(); n > 0 {
		return plugin.ErrModuleInUse(f.path, int(n))
	}
	f.unloaded.Store(true)
	return nil
}

func (f *fakeModule) Path() string { return f.path }
func (f *fakeModule) Live() int    { return int(f.live.Load()) }

// fakeLoader records loaded modules; fail forces a LoadError.
type fakeLoader struct {
	fail bool
	mu   sync.Mutex
	mods []*fakeModule
}

func (l *fakeLoader) Load(res build.Result) (Module, error) {
	if l.fail {
		return nil, plugin.ErrLoad(res.OutputFile, errors.New("bad elf"))
	}
	mod := &fakeModule{path: res.OutputFile}
	l.mu.Lock()
	l.mods = append(l.mods, mod)
	l.mu.Unlock()
	return mod, nil
}

func (l *fakeLoader) last() *fakeModule {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mods[len(l.mods)-1]
}

type fixture struct {
	m        *Manager
	compiler *fakeCompiler
	loader   *fakeLoader
	pub      *MemoryPublisher
	dir      string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	reg := visualizer.NewRegistry()
	if err := models.RegisterBuiltins(reg); err != nil {
		t.Fatalf("RegisterBuiltins: %v", err)
	}
	f := &fixture{compiler: &fakeCompiler{}, loader: &fakeLoader{}, pub: NewMemoryPublisher(), dir: dir}
	f.m = New(Config{
		Compiler:     f.compiler,
		Loader:       f.loader,
		Registry:     reg,
		PluginsDir:   filepath.Join(dir, "plugins"),
		ArtifactsDir: filepath.Join(dir, "artifacts"),
		Publisher:    f.pub,
	})
	return f
}

func (f *fixture) source(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(f.dir, "plugins")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("// model\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

package manager

import (
	"context"
	"fmt"
	"time"

	"vizd/internal/build"
	"vizd/internal/catalog"
)

// CompileOptions describes one compile request to the manager.
type CompileOptions struct {
	// Model name; defaults to the source file stem.
	Model string
	// Source path; defaults to the source discovered for Model.
	Source string
	// Standard overrides the configured language standard.
	Standard     string
	IncludePaths []string
	Flags        []string
	// SkipLoad stops after a successful compile, leaving the model Compiled.
	SkipLoad bool
}

// Compile runs compile, load and register for one model. The returned
// descriptor reflects the terminal state of this attempt. The error is nil
// only when every requested step succeeded; request validation errors
// (IsInvalidRequest, IsCompileInProgress) are returned before anything runs
// and leave the result zero.
func (m *Manager) Compile(ctx context.Context, opts CompileOptions, progress build.ProgressFunc) (ModelDescriptor, build.Result, error) {
	d, req, err := m.begin(opts)
	if err != nil {
		return ModelDescriptor{}, build.Result{}, err
	}
	name := d.Name
	defer m.end(name)

	m.publisher.Publish(Event{Name: EventCompileStart, Model: name, Fields: map[string]any{
		"source": req.SourceFile, "output": req.OutputFile, "generation": d.Generation,
	}})
	res := m.compiler.Compile(ctx, req, progress)
	compileDuration.Observe(res.Duration.Seconds())
	compilesTotal.WithLabelValues(resultLabel(res.Success)).Inc()

	m.mu.Lock()
	m.stats.compiles++
	if res.Toolchain.ExecutablePath != "" {
		tc := res.Toolchain
		m.lastToolchain = &tc
	}
	if res.Success {
		_ = d.transition(StateCompiled)
	} else {
		m.stats.compileFailures++
		_ = d.transition(StateCompileFailed)
		d.Err = res.Err
		if d.Err == nil {
			d.Err = fmt.Errorf("compilation failed with exit code %d", res.ExitCode)
		}
		m.lastErr = d.Err.Error()
	}
	snap := *d
	m.mu.Unlock()

	if !res.Success {
		m.publisher.Publish(Event{Name: EventCompileFailed, Model: name, Fields: map[string]any{
			"exit_code": res.ExitCode, "error": snap.Err.Error(), "kind": ErrorKind(snap.Err),
		}})
		return snap, res, snap.Err
	}
	m.publisher.Publish(Event{Name: EventCompileDone, Model: name, Fields: map[string]any{
		"output": res.OutputFile, "dur_ms": res.Duration.Milliseconds(),
	}})
	if opts.SkipLoad {
		return snap, res, nil
	}
	snap, err = m.load(d, res)
	return snap, res, err
}

// begin validates opts, reserves the model and installs a fresh Compiling
// descriptor.
func (m *Manager) begin(opts CompileOptions) (*ModelDescriptor, build.Request, error) {
	name, source := opts.Model, opts.Source
	if name == "" && source == "" {
		return nil, build.Request{}, ErrInvalidRequest("model or source is required")
	}
	if name == "" {
		name = catalog.NameOf(source)
	}
	if !catalog.ValidName(name) {
		return nil, build.Request{}, invalidNameError{name: name}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.compiling[name]; busy {
		return nil, build.Request{}, ErrCompileInProgress(name)
	}
	if prev := m.descriptors[name]; prev != nil && prev.Origin == OriginBuiltin {
		return nil, build.Request{}, ErrInvalidRequest("model " + name + " is built in")
	}
	if source == "" {
		if prev := m.descriptors[name]; prev != nil && prev.Origin == OriginDynamic {
			source = prev.SourcePath
		}
		if source == "" {
			return nil, build.Request{}, ErrInvalidRequest("no source known for model " + name)
		}
	}

	gen := m.nextGeneration(name)
	d := newDescriptor(name, OriginDynamic, StateNotCompiled)
	d.SourcePath = source
	d.Generation = gen
	d.ArtifactPath = ArtifactPath(m.artifactsDir, name, gen)
	if err := d.transition(StateCompiling); err != nil {
		return nil, build.Request{}, err
	}
	m.descriptors[name] = d
	m.compiling[name] = struct{}{}
	compilesInProgress.Inc()

	standard := opts.Standard
	if standard == "" {
		standard = m.standard
	}
	req := build.Request{
		SourceFile:        source,
		OutputFile:        d.ArtifactPath,
		StandardOverride:  standard,
		ExtraIncludePaths: append([]string(nil), opts.IncludePaths...),
		ExtraFlags:        append([]string(nil), opts.Flags...),
	}
	return d, req, nil
}

func (m *Manager) end(name string) {
	m.mu.Lock()
	delete(m.compiling, name)
	m.mu.Unlock()
	compilesInProgress.Dec()
}

// load maps the artifact and registers the model. d must be Compiled.
func (m *Manager) load(d *ModelDescriptor, res build.Result) (ModelDescriptor, error) {
	name := d.Name
	start := time.Now()
	mod, err := m.loader.Load(res)
	if err == nil {
		if regErr := m.registry.Register(name, mod.Bind(name)); regErr != nil {
			_ = mod.Unload()
			err = regErr
		}
	}
	loadsTotal.WithLabelValues(resultLabel(err == nil)).Inc()

	m.mu.Lock()
	m.stats.loads++
	if err != nil {
		m.stats.loadFailures++
		_ = d.transition(StateLoadFailed)
		d.Err = err
		m.lastErr = err.Error()
	} else {
		_ = d.transition(StateLoaded)
		m.modules[name] = append(m.modules[name], mod)
		loadedModules.Inc()
	}
	snap := *d
	m.mu.Unlock()

	if err != nil {
		m.log.Warn().Err(err).Str("model", name).Str("artifact", res.OutputFile).Msg("load failed")
		m.publisher.Publish(Event{Name: EventLoadFailed, Model: name, Fields: map[string]any{
			"error": err.Error(), "kind": ErrorKind(err),
		}})
		return snap, err
	}
	m.log.Info().Str("model", name).Str("artifact", mod.Path()).Int("generation", snap.Generation).Dur("dur", time.Since(start)).Msg("model loaded")
	m.publisher.Publish(Event{Name: EventLoadDone, Model: name, Fields: map[string]any{"artifact": mod.Path()}})
	m.publisher.Publish(Event{Name: EventRegister, Model: name, Fields: map[string]any{"generation": snap.Generation}})
	return snap, nil
}

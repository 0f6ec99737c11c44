package plugin

import (
	"errors"
	"fmt"
	"sync"

	"vizd/internal/visualizer"
)

// Module is a mapped plugin artifact.
type Module struct {
	path    string
	vt      *vtable
	closeFn func() error

	mu       sync.Mutex
	live     int
	unloaded bool
}

func newModule(path string, vt *vtable, closeFn func() error) *Module {
	return &Module{path: path, vt: vt, closeFn: closeFn}
}

// Path returns the artifact path the module was mapped from.
func (m *Module) Path() string { return m.path }

// Live returns the number of instances not yet closed.
func (m *Module) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

// Bind returns a constructor producing one native instance per call, adapted
// under modelName.
func (m *Module) Bind(modelName string) visualizer.Constructor {
	return visualizer.Bind(modelName, m.NewInstance)
}

// NewInstance creates a native instance. Creation failures yield an instance
// whose error-returning methods report the failure and whose other methods
// do nothing.
func (m *Module) NewInstance() *Instance {
	m.mu.Lock()
	if m.unloaded {
		m.mu.Unlock()
		return &Instance{err: fmt.Errorf("module %s is unloaded", m.path)}
	}
	m.live++
	m.mu.Unlock()

	self := m.vt.create()
	if self == 0 {
		m.release()
		return &Instance{err: fmt.Errorf("module %s: create returned null", m.path)}
	}
	return &Instance{m: m, vt: m.vt, self: self}
}

func (m *Module) release() {
	m.mu.Lock()
	m.live--
	m.mu.Unlock()
}

// Unload unmaps the module. It fails with ModuleInUse while instances are
// alive and is a no-op once unloaded.
func (m *Module) Unload() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unloaded {
		return nil
	}
	if m.live > 0 {
		return ErrModuleInUse(m.path, m.live)
	}
	m.unloaded = true
	if m.closeFn != nil {
		return m.closeFn()
	}
	return nil
}

// Instance adapts one native model instance to visualizer.Impl.
type Instance struct {
	m    *Module
	vt   *vtable
	self uintptr
	err  error
	once sync.Once
}

var _ visualizer.Impl = (*Instance)(nil)

// Err reports why the instance could not be created.
func (i *Instance) Err() error { return i.err }

func (i *Instance) ok() bool { return i.err == nil && i.self != 0 }

func (i *Instance) InitMatrix(dimX, dimY int) {
	if i.ok() {
		i.vt.initMatrix(i.self, int32(dimX), int32(dimY))
	}
}

func (i *Instance) PrepareStage(nNodeX, nNodeY int) {
	if i.ok() {
		i.vt.prepareStage(i.self, int32(nNodeX), int32(nNodeY))
	}
}

func (i *Instance) ClearStage() {
	if i.ok() {
		i.vt.clearStage(i.self)
	}
}

func (i *Instance) ReadStepsOffsets(nNodeX, nNodeY int, filename string) error {
	if !i.ok() {
		return i.unavailable()
	}
	if rc := i.vt.readStepsOffsets(i.self, int32(nNodeX), int32(nNodeY), filename); rc != 0 {
		return fmt.Errorf("read step offsets %s: plugin returned %d", filename, rc)
	}
	return nil
}

const initialLineCap = 64

func (i *Instance) LoadStepState(step visualizer.StepIndex) ([]visualizer.Line, error) {
	if !i.ok() {
		return nil, i.unavailable()
	}
	buf := make([]cLine, initialLineCap)
	n := i.vt.readStageState(i.self, int32(step), &buf[0], int32(len(buf)))
	if n > int32(len(buf)) {
		buf = make([]cLine, n)
		n = i.vt.readStageState(i.self, int32(step), &buf[0], int32(len(buf)))
	}
	if n < 0 {
		return nil, fmt.Errorf("load step %d: plugin returned %d", step, n)
	}
	n = min(n, int32(len(buf)))
	out := make([]visualizer.Line, n)
	for k := range out {
		out[k] = buf[k].line()
	}
	return out, nil
}

func (i *Instance) Draw(rows, cols int, target visualizer.RenderTarget, actor visualizer.Actor, s visualizer.DrawSettings) {
	if !i.ok() {
		return
	}
	var renderer uintptr
	if target != nil {
		renderer = target.Handle()
	}
	host, release := newHost(actor)
	defer release()
	cs := toCSettings(s)
	i.vt.draw(i.self, int32(rows), int32(cols), renderer, host, &cs)
}

func (i *Instance) Refresh(rows, cols int, actor visualizer.Actor, s visualizer.DrawSettings) {
	if !i.ok() {
		return
	}
	host, release := newHost(actor)
	defer release()
	cs := toCSettings(s)
	i.vt.refresh(i.self, int32(rows), int32(cols), host, &cs)
}

func (i *Instance) AvailableSteps() []visualizer.StepIndex {
	if !i.ok() {
		return nil
	}
	n := i.vt.availableSteps(i.self, nil, 0)
	if n <= 0 {
		return nil
	}
	buf := make([]int32, n)
	n = min(i.vt.availableSteps(i.self, &buf[0], n), int32(len(buf)))
	out := make([]visualizer.StepIndex, 0, n)
	for _, s := range buf[:max(n, 0)] {
		out = append(out, visualizer.StepIndex(s))
	}
	return out
}

// Close destroys the native instance and releases its hold on the module.
// It is idempotent.
func (i *Instance) Close() error {
	i.once.Do(func() {
		if i.ok() {
			i.vt.destroy(i.self)
			i.self = 0
			i.m.release()
		}
	})
	return nil
}

func (i *Instance) unavailable() error {
	if i.err != nil {
		return i.err
	}
	return errors.New("instance is closed")
}

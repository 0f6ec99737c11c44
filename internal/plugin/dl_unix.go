//go:build darwin || freebsd || linux

package plugin

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func closeLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}

// bindTable calls the entry function and binds every table slot.
func bindTable(entry uintptr) (*vtable, error) {
	var get func() unsafe.Pointer
	purego.RegisterFunc(&get, entry)
	p := get()
	if p == nil {
		return nil, errors.New("entry returned a null table")
	}
	t := *(*pluginTable)(p)
	if err := validateTable(&t); err != nil {
		return nil, err
	}
	vt := &vtable{}
	purego.RegisterFunc(&vt.create, t.Create)
	purego.RegisterFunc(&vt.destroy, t.Destroy)
	purego.RegisterFunc(&vt.initMatrix, t.InitMatrix)
	purego.RegisterFunc(&vt.prepareStage, t.PrepareStage)
	purego.RegisterFunc(&vt.clearStage, t.ClearStage)
	purego.RegisterFunc(&vt.readStepsOffsets, t.ReadStepsOffsets)
	purego.RegisterFunc(&vt.readStageState, t.ReadStageState)
	purego.RegisterFunc(&vt.draw, t.Draw)
	purego.RegisterFunc(&vt.refresh, t.Refresh)
	purego.RegisterFunc(&vt.availableSteps, t.AvailableSteps)
	return vt, nil
}

// Callbacks are created once; purego callbacks are never freed.
var callbacks = sync.OnceValues(func() (uintptr, uintptr) {
	return purego.NewCallback(hostResize), purego.NewCallback(hostSetCell)
})

func hostCallbacks() (resize, setCell uintptr) { return callbacks() }

//go:build !(darwin || freebsd || linux)

package plugin

import (
	"fmt"
	"runtime"
)

var errUnsupported = fmt.Errorf("dynamic loading is not supported on %s", runtime.GOOS)

func openLibrary(string) (uintptr, error) { return 0, errUnsupported }
func lookupSymbol(uintptr, string) (uintptr, error) { return 0, errUnsupported }
func closeLibrary(uintptr) error { return nil }
func bindTable(uintptr) (*vtable, error) { return nil, errUnsupported }
func hostCallbacks() (resize, setCell uintptr) { return 0, 0 }

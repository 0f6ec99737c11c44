package plugin

import (
	"errors"
	"fmt"
)

type loadError struct {
	path string
	err  error
}

func (e loadError) Error() string { return fmt.Sprintf("load %s: %v", e.path, e.err) }
func (e loadError) Unwrap() error { return e.err }

// ErrLoad reports an artifact that could not be mapped or adapted.
func ErrLoad(path string, err error) error { return loadError{path: path, err: err} }

// IsLoadError reports whether err indicates a failed load.
func IsLoadError(err error) bool {
	var e loadError
	return errors.As(err, &e)
}

type symbolNotFoundError struct {
	path, symbol string
	err          error
}

func (e symbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol %s not found in %s: %v", e.symbol, e.path, e.err)
}

// IsSymbolNotFound reports whether err indicates a missing entry symbol.
func IsSymbolNotFound(err error) bool {
	var e symbolNotFoundError
	return errors.As(err, &e)
}

type moduleInUseError struct {
	path string
	live int
}

func (e moduleInUseError) Error() string {
	return fmt.Sprintf("module %s has %d live instances", e.path, e.live)
}

// ErrModuleInUse reports an unload refused while live instances remain.
func ErrModuleInUse(path string, live int) error { return moduleInUseError{path: path, live: live} }

// IsModuleInUse reports whether err indicates an unload refused because
// instances are alive.
func IsModuleInUse(err error) bool {
	var e moduleInUseError
	return errors.As(err, &e)
}

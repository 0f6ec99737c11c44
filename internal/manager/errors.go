package manager

import (
	"errors"
	"fmt"

	"vizd/internal/build"
	"vizd/internal/plugin"
	"vizd/internal/visualizer"
)

type compileInProgressError struct{ name string }

func (e compileInProgressError) Error() string { return "compile already in progress: " + e.name }

// ErrCompileInProgress reports a second concurrent compile of the same model.
func ErrCompileInProgress(name string) error { return compileInProgressError{name: name} }

// IsCompileInProgress reports whether err indicates a concurrent compile (409).
func IsCompileInProgress(err error) bool {
	var e compileInProgressError
	return errors.As(err, &e)
}

type invalidNameError struct{ name string }

func (e invalidNameError) Error() string { return fmt.Sprintf("invalid model name %q", e.name) }

// IsInvalidName reports whether err indicates a rejected model name (400).
func IsInvalidName(err error) bool {
	var e invalidNameError
	return errors.As(err, &e)
}

type invalidRequestError struct{ msg string }

func (e invalidRequestError) Error() string { return e.msg }

// ErrInvalidRequest reports a request missing required inputs (400).
func ErrInvalidRequest(msg string) error { return invalidRequestError{msg: msg} }

// IsInvalidRequest reports whether err indicates a malformed request.
func IsInvalidRequest(err error) bool {
	var e invalidRequestError
	return errors.As(err, &e) || IsInvalidName(err)
}

type illegalTransitionError struct {
	name     string
	from, to State
}

func (e illegalTransitionError) Error() string {
	return fmt.Sprintf("model %s: illegal transition %s -> %s", e.name, e.from, e.to)
}

// IsIllegalTransition reports whether err indicates a rejected state change.
func IsIllegalTransition(err error) bool {
	var e illegalTransitionError
	return errors.As(err, &e)
}

type notUnloadableError struct {
	name  string
	state State
}

func (e notUnloadableError) Error() string {
	return fmt.Sprintf("model %s cannot be unloaded in state %s", e.name, e.state)
}

// IsNotUnloadable reports an unload of a built-in or unloaded model (409).
func IsNotUnloadable(err error) bool {
	var e notUnloadableError
	return errors.As(err, &e)
}

func errNoLoader(path string) error {
	return plugin.ErrLoad(path, errors.New("no loader configured"))
}

// IsUnknownModel reports whether err indicates an unknown model name (404).
func IsUnknownModel(err error) bool { return visualizer.IsUnknownModel(err) }

// IsModuleInUse reports whether an unload was refused by live instances (409).
func IsModuleInUse(err error) bool { return plugin.IsModuleInUse(err) }

// ErrorKind returns a stable snake_case name for compile, load and lookup errors.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case plugin.IsSymbolNotFound(err):
		return "symbol_not_found"
	case plugin.IsLoadError(err):
		return "load_error"
	case IsCompileInProgress(err):
		return "compile_in_progress"
	case IsInvalidRequest(err):
		return "invalid_request"
	case IsUnknownModel(err):
		return "unknown_model"
	case IsModuleInUse(err):
		return "module_in_use"
	default:
		return build.Kind(err)
	}
}

package build

import (
	"errors"
	"fmt"

	"vizd/internal/toolchain"
)

type sourceNotFoundError struct{ path string }

func (e sourceNotFoundError) Error() string { return "source file not found: " + e.path }

// ErrSourceNotFound reports a compile request whose source is not a regular file.
func ErrSourceNotFound(path string) error { return sourceNotFoundError{path: path} }

// IsSourceNotFound reports whether err indicates a missing source module.
func IsSourceNotFound(err error) bool {
	var e sourceNotFoundError
	return errors.As(err, &e)
}

type launchError struct {
	path string
	err  error
}

func (e launchError) Error() string { return fmt.Sprintf("launch %s: %v", e.path, e.err) }
func (e launchError) Unwrap() error { return e.err }

// ErrLaunch wraps a failure to start the compiler process.
func ErrLaunch(path string, err error) error { return launchError{path: path, err: err} }

// IsLaunchError reports whether err indicates the process could not be started.
func IsLaunchError(err error) bool {
	var e launchError
	return errors.As(err, &e)
}

type compileError struct {
	exitCode int
	stderr   string
	msg      string
}

func (e compileError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("compiler exited with code %d", e.exitCode)
}

// ErrCompile reports a non-zero compiler exit. stderr is attached verbatim.
func ErrCompile(exitCode int, stderr string) error {
	return compileError{exitCode: exitCode, stderr: stderr}
}

func errNoArtifact(output string) error {
	return compileError{msg: "compiler exited 0 but produced no artifact at " + output}
}

// IsCompileError reports whether err indicates the compiler rejected the module.
func IsCompileError(err error) bool {
	var e compileError
	return errors.As(err, &e)
}

// CompileStderr returns the compiler diagnostics attached to a compile error.
func CompileStderr(err error) string {
	var e compileError
	if errors.As(err, &e) {
		return e.stderr
	}
	return ""
}

type cancelledError struct{ err error }

func (e cancelledError) Error() string { return "compilation cancelled: " + e.err.Error() }
func (e cancelledError) Unwrap() error { return e.err }

// ErrCancelled wraps the context error that stopped a run.
func ErrCancelled(err error) error { return cancelledError{err: err} }

// IsCancelled reports whether err indicates the run was cancelled.
func IsCancelled(err error) bool {
	var e cancelledError
	return errors.As(err, &e)
}

// Kind returns a stable snake_case name for the error kinds produced while
// compiling. Unknown errors map to "internal".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsSourceNotFound(err):
		return "source_not_found"
	case toolchain.IsToolchainNotFound(err):
		return "toolchain_not_found"
	case IsLaunchError(err):
		return "launch_error"
	case IsCancelled(err):
		return "cancelled"
	case IsCompileError(err):
		return "compile_error"
	default:
		return "internal"
	}
}

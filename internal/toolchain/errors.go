package toolchain

import (
	"errors"
	"strings"
)

// toolchainNotFoundError reports that neither a bundled toolchain nor any verified
// compiler could be used.
type toolchainNotFoundError struct {
	preferred string
	tried     []string
}

func (e toolchainNotFoundError) Error() string {
	msg := "no C++ compiler found"
	if len(e.tried) > 0 {
		msg += " (tried " + strings.Join(e.tried, ", ") + ")"
	}
	return msg + ". Please install clang++, g++, or c++."
}

// ErrToolchainNotFound constructs the error returned when resolution fails.
func ErrToolchainNotFound(preferred string, tried []string) error {
	return toolchainNotFoundError{preferred: preferred, tried: append([]string(nil), tried...)}
}

// IsToolchainNotFound reports whether err indicates a failed toolchain resolution.
func IsToolchainNotFound(err error) bool {
	var e toolchainNotFoundError
	return errors.As(err, &e)
}

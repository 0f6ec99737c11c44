package toolchain

import (
	"fmt"
	"path/filepath"
)

// Descriptor identifies exactly one compiler invocation target.
// It is a value type; copies are independent and nothing mutates it after Resolve.
type Descriptor struct {
	// ExecutablePath is the compiler to run. Absolute for bundled toolchains,
	// otherwise as found on PATH.
	ExecutablePath string `json:"executable_path"`
	// IsBundled marks a portable toolchain shipped with the application. Such a
	// toolchain needs header isolation and an explicit runtime library path.
	IsBundled bool `json:"is_bundled"`
	// SysrootPath is the root of the bundled header/library tree. Empty for
	// system toolchains.
	SysrootPath string `json:"sysroot_path,omitempty"`
}

// BinDir returns the directory holding the compiler executable.
func (d Descriptor) BinDir() string { return filepath.Dir(d.ExecutablePath) }

// HasSysroot reports whether the descriptor carries a sysroot.
func (d Descriptor) HasSysroot() bool { return d.SysrootPath != "" }

func (d Descriptor) String() string {
	if d.IsBundled {
		return fmt.Sprintf("%s (bundled, sysroot=%s)", d.ExecutablePath, d.SysrootPath)
	}
	return d.ExecutablePath
}

// sysrootFor derives the mount root of a bundled toolchain from its compiler
// path: <root>/usr/bin/clang++ -> <root>.
func sysrootFor(compiler string) string {
	bin := filepath.Dir(compiler)
	usr := filepath.Dir(bin)
	return filepath.Dir(usr)
}

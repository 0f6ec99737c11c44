package build

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"vizd/internal/common/fsutil"
)

// hostTriple maps GOARCH to the architecture component of the multiarch triple.
func hostTriple() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "386":
		return "i386"
	default:
		return runtime.GOARCH
	}
}

// bundledSystemIncludes lists the -isystem directories of a bundled toolchain
// in lookup order: C runtime, C++ standard library, platform config, compiler
// intrinsics, then any GCC headers shipped alongside.
func bundledSystemIncludes(sysroot, triple, clangVersion string) []string {
	inc := filepath.Join(sysroot, "usr", "include")
	dirs := []string{
		inc,
		filepath.Join(inc, triple+"-linux-gnu"),
		filepath.Join(inc, "c++", "v1"),
		filepath.Join(inc, "c++"),
		filepath.Join(inc, triple+"-unknown-linux-gnu", "c++", "v1"),
	}
	if d := clangIntrinsicsDir(sysroot, clangVersion); d != "" {
		dirs = append(dirs, d)
	}
	return append(dirs, gccIncludeDirs(sysroot)...)
}

// clangIntrinsicsDir returns <sysroot>/usr/lib/clang/<ver>/include, preferring
// version when present and otherwise the first version directory found.
func clangIntrinsicsDir(sysroot, version string) string {
	base := filepath.Join(sysroot, "usr", "lib", "clang")
	if version != "" {
		if d := filepath.Join(base, version, "include"); fsutil.IsDir(d) {
			return d
		}
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if d := filepath.Join(base, e.Name(), "include"); fsutil.IsDir(d) {
			return d
		}
	}
	return ""
}

// gccIncludeDirs finds usr/lib*/gcc/<target>/<version>/include{,-fixed} under sysroot.
func gccIncludeDirs(sysroot string) []string {
	var out []string
	for _, lib := range []string{"lib", "lib64"} {
		matches, _ := filepath.Glob(filepath.Join(sysroot, "usr", lib, "gcc", "*", "*"))
		sort.Strings(matches)
		for _, m := range matches {
			for _, sub := range []string{"include", "include-fixed"} {
				if d := filepath.Join(m, sub); fsutil.IsDir(d) {
					out = append(out, d)
				}
			}
		}
	}
	return out
}

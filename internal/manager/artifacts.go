package manager

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// ArtifactExt is the shared library extension for the host platform.
func ArtifactExt() string {
	if runtime.GOOS == "darwin" {
		return "dylib"
	}
	return "so"
}

// ArtifactPath returns <dir>/<name>/<name>.<gen>.<ext>.
func ArtifactPath(dir, name string, gen int) string {
	return filepath.Join(dir, name, name+"."+strconv.Itoa(gen)+"."+ArtifactExt())
}

// scanGeneration returns the highest generation present for name under dir,
// or 0 when none exists.
func scanGeneration(dir, name string) int {
	entries, err := os.ReadDir(filepath.Join(dir, name))
	if err != nil {
		return 0
	}
	prefix, suffix := name+".", "."+ArtifactExt()
	highest := 0
	for _, e := range entries {
		fn := e.Name()
		if e.IsDir() || !strings.HasPrefix(fn, prefix) || !strings.HasSuffix(fn, suffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(fn, prefix), suffix))
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

// nextGeneration hands out the next generation for name. Callers hold m.mu.
func (m *Manager) nextGeneration(name string) int {
	gen, ok := m.generation[name]
	if !ok {
		gen = scanGeneration(m.artifactsDir, name)
	}
	gen++
	m.generation[name] = gen
	return gen
}

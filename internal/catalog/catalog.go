package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"vizd/internal/common/fsutil"
)

// SourceExtensions are the file extensions recognised as model sources.
var SourceExtensions = []string{".cpp", ".cc", ".cxx"}

// Source is a model source module found on disk.
type Source struct {
	// Name is the file stem, used as the model name.
	Name string
	// Path is the absolute file path.
	Path string
}

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// ValidName reports whether name can be used as a model name and as a path
// component of its artifacts.
func ValidName(name string) bool {
	return validName.MatchString(name) && !strings.Contains(name, "..")
}

// NameOf derives the model name of a source path.
func NameOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsSource reports whether path has a recognised source extension.
func IsSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Scan lists model sources in dir, sorted by name. Files whose stem is not a
// valid model name are skipped, and when two sources share a stem the first
// in lexical order wins.
func Scan(dir string) ([]Source, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	seen := map[string]bool{}
	var out []Source
	for _, e := range entries {
		if e.IsDir() || !IsSource(e.Name()) {
			continue
		}
		name := NameOf(e.Name())
		if !ValidName(name) || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, Source{Name: name, Path: filepath.Join(abs, e.Name())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

package build

import (
	"path/filepath"

	"vizd/internal/toolchain"
)

// Default include layouts for the engine and the host project.
var (
	DefaultEngineSubdirs  = []string{"OOpenCAL/base", ""}
	DefaultProjectSubdirs = []string{"", "include", "include/vizplugin"}
)

// SynthConfig holds the startup settings the synthesizer needs. It is built once
// from resolved configuration; the synthesizer never reads the environment.
type SynthConfig struct {
	// EngineDir is the simulation engine checkout; empty skips engine includes.
	EngineDir     string
	EngineSubdirs []string
	// ProjectRoot is the host project root providing the plugin header.
	ProjectRoot    string
	ProjectSubdirs []string
	// LibraryFlags are injected after project includes (render library -I flags etc).
	LibraryFlags []string
	// ClangVersion prefers <sysroot>/usr/lib/clang/<ver>/include when bundled.
	ClangVersion string
	// Triple overrides the multiarch architecture (x86_64, aarch64).
	Triple string
}

// Synthesizer produces compile commands for a toolchain and request.
type Synthesizer struct {
	cfg SynthConfig
}

// NewSynthesizer applies defaults to cfg.
func NewSynthesizer(cfg SynthConfig) *Synthesizer {
	if cfg.EngineSubdirs == nil {
		cfg.EngineSubdirs = DefaultEngineSubdirs
	}
	if cfg.ProjectSubdirs == nil {
		cfg.ProjectSubdirs = DefaultProjectSubdirs
	}
	if cfg.Triple == "" {
		cfg.Triple = hostTriple()
	}
	return &Synthesizer{cfg: cfg}
}

// Command builds the complete invocation for tc and req. Apart from read-only
// existence checks while locating bundled headers it performs no I/O.
func (s *Synthesizer) Command(tc toolchain.Descriptor, req Request) Command {
	cmd := Command{Path: tc.ExecutablePath}
	std := toolchain.DetectStandard(req.StandardOverride)

	if tc.IsBundled {
		bin := tc.BinDir()
		cmd.Env = []EnvVar{{
			Name:    "LD_LIBRARY_PATH",
			Value:   filepath.Join(bin, "..", "lib", "clang-libs") + ":" + filepath.Join(bin, "..", "lib"),
			Inherit: true,
		}}
	}

	args := []string{"-shared", "-fPIC", "-std=" + std}

	if tc.IsBundled {
		args = append(args, "-nostdinc", "-nostdinc++")
		for _, d := range bundledSystemIncludes(tc.SysrootPath, s.cfg.Triple, s.cfg.ClangVersion) {
			args = append(args, "-isystem", d)
		}
	}

	if s.cfg.EngineDir != "" {
		for _, sub := range s.cfg.EngineSubdirs {
			args = append(args, "-I"+joinSub(s.cfg.EngineDir, sub))
		}
	}

	if s.cfg.ProjectRoot != "" {
		for _, sub := range s.cfg.ProjectSubdirs {
			args = append(args, "-I"+joinSub(s.cfg.ProjectRoot, sub))
		}
	}
	if tc.IsBundled && tc.HasSysroot() {
		inc := filepath.Join(tc.SysrootPath, "usr", "include")
		for _, sub := range s.cfg.ProjectSubdirs {
			if sub == "" {
				continue
			}
			args = append(args, "-I"+filepath.Join(inc, sub))
		}
	}

	args = append(args, s.cfg.LibraryFlags...)
	for _, p := range req.ExtraIncludePaths {
		args = append(args, "-I"+p)
	}
	args = append(args, req.ExtraFlags...)
	args = append(args, req.SourceFile, "-o", req.OutputFile)

	cmd.Args = args
	return cmd
}

func joinSub(root, sub string) string {
	if sub == "" {
		return filepath.Clean(root)
	}
	return filepath.Join(root, sub)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"vizd/internal/common/fsutil"
)

// Environment variables consulted by Resolve.
const (
	EnvAddr             = "VIZD_ADDR"
	EnvBundledToolchain = "CLANG_TOOLCHAIN_PATH"
	EnvEngineDir        = "OOPENCAL_DIR"
	EnvProjectRoot      = "OOPENCAL_VIEWER_ROOT"
	EnvCompiler         = "VIZ_COMPILER"
	EnvLogLevel         = "VIZ_LOG_LEVEL"
	EnvLibraryFlags     = "VIZ_LIBRARY_FLAGS"
	EnvProgressBatch    = "VIZ_PROGRESS_BATCH"
)

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	cache, err := os.UserCacheDir()
	if err != nil {
		cache = os.TempDir()
	}
	return Config{
		Addr:          ":8080",
		PluginsDir:    "plugins",
		ArtifactsDir:  filepath.Join(cache, "vizd", "artifacts"),
		Compiler:      "clang++",
		ProgressBatch: 5,
		LogLevel:      "info",
	}
}

// Resolve consolidates configuration once at startup: defaults, then the
// optional file at path, then environment variables. lookupEnv is usually
// os.LookupEnv. Directory fields have a leading ~ expanded.
func Resolve(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := Defaults()
	if path != "" {
		fc, err := Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = Merge(cfg, fc)
	}
	if lookupEnv == nil {
		lookupEnv = func(string) (string, bool) { return "", false }
	}
	env := func(name string, dst *string) {
		if v, ok := lookupEnv(name); ok && v != "" {
			*dst = v
		}
	}
	env(EnvAddr, &cfg.Addr)
	env(EnvBundledToolchain, &cfg.BundledToolchainDir)
	env(EnvEngineDir, &cfg.EngineDir)
	env(EnvProjectRoot, &cfg.ProjectRoot)
	env(EnvCompiler, &cfg.Compiler)
	env(EnvLogLevel, &cfg.LogLevel)
	if v, ok := lookupEnv(EnvLibraryFlags); ok && strings.TrimSpace(v) != "" {
		cfg.LibraryFlags = strings.Fields(v)
	}
	if v, ok := lookupEnv(EnvProgressBatch); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("%s: invalid batch size %q", EnvProgressBatch, v)
		}
		cfg.ProgressBatch = n
	}

	for _, p := range []*string{&cfg.PluginsDir, &cfg.ArtifactsDir, &cfg.BundledToolchainDir, &cfg.EngineDir, &cfg.ProjectRoot} {
		x, err := fsutil.ExpandHome(*p)
		if err != nil {
			return cfg, err
		}
		*p = x
	}
	return cfg, nil
}

// Merge returns base with every non-zero field of over applied.
func Merge(base, over Config) Config {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	str(&base.Addr, over.Addr)
	str(&base.PluginsDir, over.PluginsDir)
	str(&base.ArtifactsDir, over.ArtifactsDir)
	str(&base.Compiler, over.Compiler)
	str(&base.BundledToolchainDir, over.BundledToolchainDir)
	str(&base.ClangVersion, over.ClangVersion)
	str(&base.EngineDir, over.EngineDir)
	str(&base.ProjectRoot, over.ProjectRoot)
	str(&base.Standard, over.Standard)
	str(&base.LogLevel, over.LogLevel)
	if len(over.LibraryFlags) > 0 {
		base.LibraryFlags = append([]string(nil), over.LibraryFlags...)
	}
	if len(over.CORSOrigins) > 0 {
		base.CORSOrigins = append([]string(nil), over.CORSOrigins...)
	}
	if over.ProgressBatch > 0 {
		base.ProgressBatch = over.ProgressBatch
	}
	return base
}

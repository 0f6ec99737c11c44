// Package app wires resolved configuration into the components shared by
// the vizd daemon and the vizctl CLI.
package app

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"vizd/internal/build"
	"vizd/internal/config"
	"vizd/internal/manager"
	"vizd/internal/models"
	"vizd/internal/plugin"
	"vizd/internal/toolchain"
	"vizd/internal/visualizer"
)

// NewLogger returns a console logger on a terminal and JSON otherwise.
func NewLogger(level string, out *os.File) zerolog.Logger {
	var w io.Writer = out
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a config level to zerolog; unknown values mean info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "off", "disabled":
		return zerolog.Disabled
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Toolchain returns a cached resolver for cfg.
func Toolchain(cfg config.Config, log *zerolog.Logger) *toolchain.Once {
	return toolchain.NewOnce(toolchain.NewResolver(toolchain.Config{
		Preferred:  cfg.Compiler,
		BundledDir: cfg.BundledToolchainDir,
		Logger:     log,
	}))
}

// Builder returns the compilation orchestrator for cfg.
func Builder(cfg config.Config, tc toolchain.Source, log *zerolog.Logger) *build.Builder {
	return build.New(build.Config{
		Toolchain: tc,
		Preferred: cfg.Compiler,
		Synth: build.NewSynthesizer(build.SynthConfig{
			EngineDir:    cfg.EngineDir,
			ProjectRoot:  cfg.ProjectRoot,
			LibraryFlags: cfg.LibraryFlags,
			ClangVersion: cfg.ClangVersion,
		}),
		BatchSize: cfg.ProgressBatch,
		Logger:    log,
	})
}

// Manager builds the full plugin subsystem: toolchain, orchestrator, loader
// and a registry holding the built-in models.
func Manager(cfg config.Config, log *zerolog.Logger, pub manager.EventPublisher) (*manager.Manager, error) {
	reg := visualizer.NewRegistry()
	if err := models.RegisterBuiltins(reg); err != nil {
		return nil, err
	}
	tc := Toolchain(cfg, log)
	return manager.New(manager.Config{
		Compiler:     Builder(cfg, tc, log),
		Loader:       manager.NewPluginLoader(plugin.NewLoader(plugin.Config{Logger: log})),
		Registry:     reg,
		PluginsDir:   cfg.PluginsDir,
		ArtifactsDir: cfg.ArtifactsDir,
		Toolchain:    tc,
		Preferred:    cfg.Compiler,
		Standard:     cfg.Standard,
		Publisher:    pub,
		Logger:       log,
	}), nil
}

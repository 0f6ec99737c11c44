package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"vizd/internal/app"
	"vizd/internal/config"
	"vizd/internal/httpapi"
)

func main() {
	configPath := flag.String("config", "", "Config file (.yaml, .yml, .json, .toml, .hcl)")
	addr := flag.String("addr", "", "HTTP listen address, e.g. :8080 (defaults VIZD_ADDR or :8080)")
	pluginsDir := flag.String("plugins-dir", "", "Directory scanned for model sources (*.cpp, *.cc, *.cxx)")
	artifactsDir := flag.String("artifacts-dir", "", "Directory receiving compiled artifacts")
	compiler := flag.String("compiler", "", "Preferred C++ compiler (defaults VIZ_COMPILER or clang++)")
	standard := flag.String("std", "", "Language standard for modules that do not override it")
	logLevel := flag.String("log-level", "", "Log level: debug|info|warn|error (defaults VIZ_LOG_LEVEL or info)")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated origins; enables CORS when set")
	compileTimeout := flag.Duration("compile-timeout", 0, "Upper bound for a single compile request (0 disables)")
	maxBody := flag.Int64("max-body-bytes", 1<<20, "Maximum request body size")
	flag.Parse()

	cfg, err := config.Resolve(*configPath, os.LookupEnv)
	if err != nil {
		log := app.NewLogger("info", os.Stderr)
		log.Fatal().Err(err).Msg("config")
	}
	// Flags override config.
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.Addr, *addr)
	override(&cfg.PluginsDir, *pluginsDir)
	override(&cfg.ArtifactsDir, *artifactsDir)
	override(&cfg.Compiler, *compiler)
	override(&cfg.Standard, *standard)
	override(&cfg.LogLevel, *logLevel)
	if origins := splitCSV(*corsOrigins); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}

	log := app.NewLogger(cfg.LogLevel, os.Stderr)
	mgr, err := app.Manager(cfg, &log, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("manager")
	}
	if _, err := mgr.Discover(); err != nil {
		log.Warn().Err(err).Str("dir", cfg.PluginsDir).Msg("plugin discovery failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpapi.SetLogger(log)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetBaseContext(ctx)
	httpapi.SetMaxBodyBytes(*maxBody)
	httpapi.SetCompileTimeout(*compileTimeout)
	httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins, nil, nil)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("plugins_dir", cfg.PluginsDir).Str("artifacts_dir", mgr.ArtifactsDir()).Msg("vizd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

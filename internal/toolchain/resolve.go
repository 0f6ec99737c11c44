package toolchain

import (
	"context"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"vizd/internal/common/fsutil"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultCompiler      = "clang++"
	DefaultBundledBinary = "clang++"
	defaultVerifyTimeout = 5 * time.Second
)

// fallbackCompilers are verified in order after the preferred compiler.
var fallbackCompilers = []string{"g++", "clang++", "c++"}

// Config captures the inputs of toolchain resolution. It is assembled once at
// startup from configuration and environment; Resolve never reads the environment.
type Config struct {
	// Preferred compiler name used when Resolve is called without one.
	Preferred string
	// BundledDir is the directory of a portable toolchain shipped with the
	// application (the launcher sets it). Empty disables the bundled path.
	BundledDir string
	// BundledBinary is the compiler file name expected under BundledDir.
	BundledBinary string
	// VerifyTimeout bounds each trial invocation.
	VerifyTimeout time.Duration
	// Verifier overrides the default exec based verifier (tests).
	Verifier Verifier
	Logger *zerolog.Logger
}

// Resolver picks a compiler according to the bundled > preferred > fallback order.
type Resolver struct {
	cfg    Config
	verifier Verifier
	log    zerolog.Logger
}

// NewResolver constructs a Resolver applying package defaults.
func NewResolver(cfg Config) *Resolver {
	if cfg.Preferred == "" {
		cfg.Preferred = DefaultCompiler
	}
	if cfg.BundledBinary == "" {
		cfg.BundledBinary = DefaultBundledBinary
	}
	if cfg.VerifyTimeout <= 0 {
		cfg.VerifyTimeout = defaultVerifyTimeout
	}
	r := &Resolver{cfg: cfg, verifier: cfg.Verifier, log: zerolog.Nop()}
	if r.verifier == nil {
		r.verifier = ExecVerifier()
	}
	if cfg.Logger != nil {
		r.log = cfg.Logger.With().Str("component", "toolchain").Logger()
	}
	return r
}

// Preferred returns the compiler name used when Resolve gets an empty preference.
func (r *Resolver) Preferred() string { return r.cfg.Preferred }

// Resolve returns exactly one Descriptor or an error satisfying IsToolchainNotFound.
// An empty preferred falls back to the configured preference.
func (r *Resolver) Resolve(ctx context.Context, preferred string) (Descriptor, error) {
	if preferred == "" {
		preferred = r.cfg.Preferred
	}

	// 1. Bundled toolchain: used as-is, never verified.
	if d, ok := r.bundled(); ok {
		r.log.Info().Str("compiler", d.ExecutablePath).Str("sysroot", d.SysrootPath).Str("reason", "bundled").Msg("toolchain selected")
		return d, nil
	}

	// 2. Preferred compiler.
	tried := []string{preferred}
	if r.verify(ctx, preferred) {
		d := Descriptor{ExecutablePath: lookPath(preferred)}
		r.log.Info().Str("compiler", d.ExecutablePath).Str("reason", "preferred").Msg("toolchain selected")
		return d, nil
	}

	// 3. Fallback list, first that answers wins.
	for _, c := range fallbackCompilers {
		if c == preferred {
			continue
		}
		tried = append(tried, c)
		if r.verify(ctx, c) {
			d := Descriptor{ExecutablePath: lookPath(c)}
			r.log.Warn().Str("preferred", preferred).Str("compiler", d.ExecutablePath).Str("reason", "fallback").Msg("preferred compiler not found, using fallback")
			return d, nil
		}
	}

	r.log.Error().Strs("tried", tried).Msg("no C++ compiler found")
	return Descriptor{}, ErrToolchainNotFound(preferred, tried)
}

func (r *Resolver) bundled() (Descriptor, bool) {
	if r.cfg.BundledDir == "" {
		return Descriptor{}, false
	}
	bin := filepath.Join(r.cfg.BundledDir, r.cfg.BundledBinary)
	if !fsutil.IsRegularFile(bin) {
		r.log.Debug().Str("path", bin).Msg("bundled toolchain indicator set but compiler missing")
		return Descriptor{}, false
	}
	abs := fsutil.AbsOrSelf(bin)
	return Descriptor{ExecutablePath: abs, IsBundled: true, SysrootPath: sysrootFor(abs)}, true
}

func (r *Resolver) verify(ctx context.Context, compiler string) bool {
	if compiler == "" {
		return false
	}
	pctx, cancel := context.WithTimeout(ctx, r.cfg.VerifyTimeout)
	defer cancel()
	ok := r.verifier.Verify(pctx, compiler)
	r.log.Debug().Str("compiler", compiler).Bool("ok", ok).Msg("verify")
	return ok
}

// lookPath resolves a bare compiler name to its PATH location when possible.
func lookPath(name string) string {
	if p, err := exec.LookPath(name); err == nil {
		return p
	}
	return name
}

// Source is anything able to resolve a toolchain.
type Source interface {
	Resolve(ctx context.Context, preferred string) (Descriptor, error)
}

// Once caches the first successful resolution per preference for the process
// lifetime. Failures are not cached so a compiler installed later is picked up.
type Once struct {
	src   Source
	mu    sync.Mutex
	cache map[string]Descriptor
}

// NewOnce wraps src with a success cache.
func NewOnce(src Source) *Once { return &Once{src: src, cache: make(map[string]Descriptor)} }

func (o *Once) Resolve(ctx context.Context, preferred string) (Descriptor, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if d, ok := o.cache[preferred]; ok {
		return d, nil
	}
	d, err := o.src.Resolve(ctx, preferred)
	if err != nil {
		return Descriptor{}, err
	}
	o.cache[preferred] = d
	return d, nil
}

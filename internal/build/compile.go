package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"vizd/internal/common/fsutil"
	"vizd/internal/toolchain"
)

// Config wires the orchestrator's collaborators.
type Config struct {
	// Toolchain resolves the compiler; required.
	Toolchain toolchain.Source
	// Preferred compiler name passed to the resolver.
	Preferred string
	// Synth builds commands; nil uses a synthesizer with default settings.
	Synth *Synthesizer
	// Runner executes commands; nil uses ExecRunner.
	Runner Runner
	// BatchSize is the number of stdout lines per throttled callback.
	BatchSize int
	Logger    *zerolog.Logger
}

// Builder sequences toolchain resolution, command synthesis and execution
// for one compile attempt at a time per call. It is safe for concurrent use.
type Builder struct {
	cfg Config
	log zerolog.Logger
}

// New constructs a Builder.
func New(cfg Config) *Builder {
	if cfg.Preferred == "" {
		cfg.Preferred = toolchain.DefaultCompiler
	}
	if cfg.Synth == nil {
		cfg.Synth = NewSynthesizer(SynthConfig{})
	}
	if cfg.Runner == nil {
		cfg.Runner = &ExecRunner{Logger: cfg.Logger}
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	b := &Builder{cfg: cfg, log: zerolog.Nop()}
	if cfg.Logger != nil {
		b.log = cfg.Logger.With().Str("component", "build").Logger()
	}
	return b
}

// Compile runs one compile attempt and returns its full result. It never
// panics or returns an error separately: failures are reported in Result.Err.
// progress may be nil.
func (b *Builder) Compile(ctx context.Context, req Request, progress ProgressFunc) Result {
	req = req.clone()
	start := time.Now()
	tr := newTracker(progress, b.cfg.BatchSize)
	res := Result{
		ExitCode:   LaunchFailedExitCode,
		SourceFile: req.SourceFile,
		OutputFile: req.OutputFile,
	}
	log := b.log.With().Str("source", req.SourceFile).Logger()

	finish := func(err error) Result {
		res.Err = err
		res.Stdout, res.Stderr = tr.output()
		res.Duration = time.Since(start)
		if err != nil {
			tr.summary(fmt.Sprintf("Compilation failed: %v", err))
			log.Warn().Err(err).Int("exit_code", res.ExitCode).Dur("dur", res.Duration).Msg("compile failed")
		} else {
			tr.summary("Compilation successful: " + res.OutputFile)
			log.Info().Str("output", res.OutputFile).Dur("dur", res.Duration).Msg("compile done")
		}
		return res
	}

	if req.SourceFile == "" || !fsutil.IsRegularFile(req.SourceFile) {
		err := ErrSourceNotFound(req.SourceFile)
		tr.appendStderr(err.Error())
		return finish(err)
	}
	if req.OutputFile == "" {
		err := fmt.Errorf("output file is required")
		tr.appendStderr(err.Error())
		return finish(err)
	}

	tr.status("Checking C++ compiler availability...")
	tc, err := b.cfg.Toolchain.Resolve(ctx, b.cfg.Preferred)
	if err != nil {
		res.Command = b.cfg.Preferred + " (not found)"
		tr.appendStderr("ERROR: No C++ compiler found. " + err.Error())
		tr.status("ERROR: No C++ compiler found")
		return finish(err)
	}
	res.Toolchain = tc
	if tc.IsBundled {
		tr.status("Using bundled clang: %s", tc.ExecutablePath)
	} else {
		tr.status("Using compiler: %s", tc.ExecutablePath)
	}

	tr.status("Preparing compilation command...")
	cmd := b.cfg.Synth.Command(tc, req)
	res.Command = cmd.String()
	if dir := filepath.Dir(req.OutputFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("create output directory")
		}
	}

	tr.status("Compiling module %s...", filepath.Base(req.SourceFile))
	log.Debug().Str("cmd", res.Command).Msg("running compiler")
	code, runErr := b.cfg.Runner.Run(ctx, cmd, tr.onStdout, tr.onStderr)
	res.ExitCode = code

	switch {
	case runErr != nil:
		tr.appendStderr(runErr.Error())
		return finish(runErr)
	case code != 0:
		_, stderr := tr.output()
		return finish(ErrCompile(code, stderr))
	case !fsutil.IsRegularFile(req.OutputFile):
		err := errNoArtifact(req.OutputFile)
		tr.appendStderr(err.Error())
		return finish(err)
	}
	res.Success = true
	return finish(nil)
}

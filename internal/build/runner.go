package build

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// LaunchFailedExitCode is returned when the process never started.
const LaunchFailedExitCode = -1

const defaultWaitDelay = 5 * time.Second

// LineSink receives one output line without its trailing newline. A nil sink
// discards the stream.
type LineSink func(line string)

// Runner executes a command and streams its output.
type Runner interface {
	Run(ctx context.Context, cmd Command, stdout, stderr LineSink) (int, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, cmd Command, stdout, stderr LineSink) (int, error)

func (f RunnerFunc) Run(ctx context.Context, cmd Command, stdout, stderr LineSink) (int, error) {
	return f(ctx, cmd, stdout, stderr)
}

// ExecRunner runs commands as child processes of the daemon.
type ExecRunner struct {
	// Dir is the working directory; empty inherits.
	Dir string
	// WaitDelay is the grace period between SIGTERM on cancellation and kill.
	WaitDelay time.Duration
	Logger    *zerolog.Logger
}

// Run starts cmd and blocks until it exits. Both pipes are drained concurrently
// as the child writes so no volume of output can stall it. A process that could
// not be started returns LaunchFailedExitCode and a launch error; a cancelled
// context terminates the child and returns a cancelled error.
func (r *ExecRunner) Run(ctx context.Context, c Command, stdout, stderr LineSink) (int, error) {
	log := zerolog.Nop()
	if r.Logger != nil {
		log = r.Logger.With().Str("component", "runner").Logger()
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = r.Dir
	cmd.Env = c.Environ(os.Environ())
	cmd.Cancel = func() error { return cmd.Process.Signal(syscall.SIGTERM) }
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = defaultWaitDelay
	}

	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	cmd.Stdout = outW
	cmd.Stderr = errW

	var g errgroup.Group
	g.Go(func() error { return drain(outR, stdout) })
	g.Go(func() error { return drain(errR, stderr) })

	log.Debug().Str("cmd", c.String()).Msg("starting")
	if err := cmd.Start(); err != nil {
		_ = outW.Close()
		_ = errW.Close()
		_ = g.Wait()
		log.Error().Err(err).Str("path", c.Path).Msg("launch failed")
		return LaunchFailedExitCode, ErrLaunch(c.Path, err)
	}

	waitErr := cmd.Wait()
	_ = outW.Close()
	_ = errW.Close()
	drainErr := g.Wait()

	code := LaunchFailedExitCode
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	}
	if ctx.Err() != nil {
		log.Warn().Int("exit_code", code).Msg("cancelled")
		return code, ErrCancelled(ctx.Err())
	}
	if waitErr != nil {
		var ee *exec.ExitError
		if !errors.As(waitErr, &ee) {
			return code, waitErr
		}
	}
	if drainErr != nil {
		return code, drainErr
	}
	log.Debug().Int("exit_code", code).Msg("exited")
	return code, nil
}

// drain forwards r to sink line by line until EOF. Lines of any length are
// accepted and the reader is always consumed fully.
func drain(r io.Reader, sink LineSink) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" && sink != nil {
			sink(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"vizd/internal/toolchain"
)

type staticSource struct {
	d   toolchain.Descriptor
	err error
}

func (s staticSource) Resolve(context.Context, string) (toolchain.Descriptor, error) {
	return s.d, s.err
}

var systemCXX = staticSource{d: toolchain.Descriptor{ExecutablePath: "/usr/bin/c++"}}

// spyRunner counts calls and delegates to fn.
type spyRunner struct {
	calls atomic.Int32
	fn    RunnerFunc
}

func (s *spyRunner) Run(ctx context.Context, cmd Command, stdout, stderr LineSink) (int, error) {
	s.calls.Add(1)
	if s.fn == nil {
		return 0, nil
	}
	return s.fn(ctx, cmd, stdout, stderr)
}

// writesOutput emits lines then creates the file following -o.
func writesOutput(stdout, stderr []string) RunnerFunc {
	return func(_ context.Context, cmd Command, out, errs LineSink) (int, error) {
		for _, l := range stdout {
			out(l)
		}
		for _, l := range stderr {
			errs(l)
		}
		for i, a := range cmd.Args {
			if a == "-o" {
				return 0, os.WriteFile(cmd.Args[i+1], []byte("\x7fELF"), 0o644)
			}
		}
		return 0, nil
	}
}

func writeSource(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ballcell.cpp")
	if err := os.WriteFile(p, []byte("// model\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

type recorder struct{ events []Progress }

func (r *recorder) fn(p Progress) { r.events = append(r.events, p) }

func (r *recorder) count(k ProgressKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func TestCompile_MissingSourceNeverRuns(t *testing.T) {
	spy := &spyRunner{}
	b := New(Config{Toolchain: systemCXX, Runner: spy})
	var rec recorder
	res := b.Compile(context.Background(), Request{SourceFile: "/does/not/exist.cpp", OutputFile: "/tmp/x.so"}, rec.fn)
	if res.Success {
		t.Fatal("expected failure")
	}
	if !IsSourceNotFound(res.Err) {
		t.Fatalf("err kind: %v", res.Err)
	}
	if spy.calls.Load() != 0 {
		t.Fatalf("runner called %d times", spy.calls.Load())
	}
	if res.ExitCode != LaunchFailedExitCode {
		t.Fatalf("exit code %d", res.ExitCode)
	}
	if rec.count(ProgressSummary) != 1 {
		t.Fatalf("expected one summary, got %+v", rec.events)
	}
}

func TestCompile_ToolchainNotFound(t *testing.T) {
	spy := &spyRunner{}
	src := staticSource{err: toolchain.ErrToolchainNotFound("my-cxx", []string{"my-cxx", "g++"})}
	b := New(Config{Toolchain: src, Preferred: "my-cxx", Runner: spy})
	res := b.Compile(context.Background(), Request{SourceFile: writeSource(t), OutputFile: filepath.Join(t.TempDir(), "m.so")}, nil)
	if res.Success || !toolchain.IsToolchainNotFound(res.Err) {
		t.Fatalf("res=%+v", res)
	}
	if res.Command != "my-cxx (not found)" {
		t.Fatalf("command=%q", res.Command)
	}
	if !strings.Contains(res.Stderr, "No C++ compiler found") {
		t.Fatalf("stderr=%q", res.Stderr)
	}
	if spy.calls.Load() != 0 {
		t.Fatal("runner must not be called")
	}
}

func TestCompile_ExitZeroWithoutArtifactFails(t *testing.T) {
	spy := &spyRunner{}
	b := New(Config{Toolchain: systemCXX, Runner: spy})
	res := b.Compile(context.Background(), Request{SourceFile: writeSource(t), OutputFile: filepath.Join(t.TempDir(), "m.so")}, nil)
	if res.Success {
		t.Fatal("exit 0 without artifact must not succeed")
	}
	if res.ExitCode != 0 || !IsCompileError(res.Err) {
		t.Fatalf("exit=%d err=%v", res.ExitCode, res.Err)
	}
}

func TestCompile_NonZeroExitAttachesStderr(t *testing.T) {
	spy := &spyRunner{fn: func(_ context.Context, _ Command, _, errs LineSink) (int, error) {
		errs("m.cpp:1:1: error: expected ';'")
		return 1, nil
	}}
	b := New(Config{Toolchain: systemCXX, Runner: spy})
	res := b.Compile(context.Background(), Request{SourceFile: writeSource(t), OutputFile: filepath.Join(t.TempDir(), "m.so")}, nil)
	if res.Success || res.ExitCode != 1 {
		t.Fatalf("res=%+v", res)
	}
	if !strings.Contains(CompileStderr(res.Err), "expected ';'") {
		t.Fatalf("stderr not attached: %v", res.Err)
	}
	if Kind(res.Err) != "compile_error" {
		t.Fatalf("kind=%q", Kind(res.Err))
	}
}

func TestCompile_SuccessWithStubRunner(t *testing.T) {
	src := writeSource(t)
	out := filepath.Join(t.TempDir(), "nested", "ballcell.so")
	spy := &spyRunner{fn: writesOutput([]string{"ok"}, nil)}
	b := New(Config{Toolchain: systemCXX, Runner: spy})
	res := b.Compile(context.Background(), Request{SourceFile: src, OutputFile: out}, nil)
	if !res.Success || res.ExitCode != 0 || res.Err != nil {
		t.Fatalf("res=%+v", res)
	}
	if !strings.Contains(res.Command, src) || !strings.Contains(res.Command, out) {
		t.Fatalf("command %q lacks source or output", res.Command)
	}
	if res.Stdout != "ok\n" {
		t.Fatalf("stdout=%q", res.Stdout)
	}
	if res.Toolchain.ExecutablePath != "/usr/bin/c++" {
		t.Fatalf("toolchain=%+v", res.Toolchain)
	}
}

func TestCompile_CancelledRun(t *testing.T) {
	spy := &spyRunner{fn: func(ctx context.Context, _ Command, _, _ LineSink) (int, error) {
		return -1, ErrCancelled(context.Canceled)
	}}
	b := New(Config{Toolchain: systemCXX, Runner: spy})
	res := b.Compile(context.Background(), Request{SourceFile: writeSource(t), OutputFile: filepath.Join(t.TempDir(), "m.so")}, nil)
	if res.Success || !IsCancelled(res.Err) || !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("res=%+v", res)
	}
}

func TestCompile_RequestSlicesAreCopied(t *testing.T) {
	flags := []string{"-O2"}
	var seen []string
	spy := &spyRunner{fn: func(_ context.Context, cmd Command, _, _ LineSink) (int, error) {
		flags[0] = "-O0"
		seen = cmd.Args
		return 1, nil
	}}
	b := New(Config{Toolchain: systemCXX, Runner: spy})
	b.Compile(context.Background(), Request{SourceFile: writeSource(t), OutputFile: "m.so", ExtraFlags: flags}, nil)
	found := false
	for _, a := range seen {
		if a == "-O2" {
			found = true
		}
	}
	if !found {
		t.Fatalf("args %v", seen)
	}
}

func TestKind(t *testing.T) {
	cases := map[string]error{
		"":                    nil,
		"source_not_found":    ErrSourceNotFound("x"),
		"toolchain_not_found": toolchain.ErrToolchainNotFound("x", nil),
		"launch_error":        ErrLaunch("x", errors.New("boom")),
		"cancelled":           ErrCancelled(context.Canceled),
		"compile_error":       ErrCompile(1, ""),
		"internal":            errors.New("other"),
	}
	for want, err := range cases {
		if got := Kind(err); got != want {
			t.Errorf("Kind(%v)=%q want %q", err, got, want)
		}
	}
}

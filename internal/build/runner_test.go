package build

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestHelperProcess is re-executed as the child process by the runner tests.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("VIZD_BUILD_HELPER") != "1" {
		return
	}
	switch os.Getenv("VIZD_HELPER_MODE") {
	case "lines":
		for i := 0; i < 3; i++ {
			fmt.Printf("out %d\n", i)
		}
		fmt.Fprintln(os.Stderr, "warning: something")
		os.Exit(0)
	case "exit3":
		fmt.Fprintln(os.Stderr, "error: bad")
		os.Exit(3)
	case "flood":
		line := strings.Repeat("x", 100)
		for i := 0; i < 20000; i++ {
			fmt.Fprintln(os.Stdout, line)
			fmt.Fprintln(os.Stderr, line)
		}
		os.Exit(0)
	case "longline":
		fmt.Print(strings.Repeat("y", 1<<20))
		os.Exit(0)
	case "env":
		fmt.Println(os.Getenv("VIZD_HELPER_PATHS"))
		os.Exit(0)
	case "sleep":
		fmt.Println("started")
		time.Sleep(time.Minute)
		os.Exit(0)
	}
	os.Exit(2)
}

func helperCommand(mode string, extra ...EnvVar) Command {
	env := append([]EnvVar{
		{Name: "VIZD_BUILD_HELPER", Value: "1"},
		{Name: "VIZD_HELPER_MODE", Value: mode},
	}, extra...)
	return Command{Env: env, Path: os.Args[0], Args: []string{"-test.run=^TestHelperProcess$"}}
}

type lineCollector struct {
	mu    sync.Mutex
	lines []string
}

func (c *lineCollector) sink(l string) {
	c.mu.Lock()
	c.lines = append(c.lines, l)
	c.mu.Unlock()
}

func (c *lineCollector) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func TestExecRunner_StreamsBothPipes(t *testing.T) {
	var out, errs lineCollector
	code, err := (&ExecRunner{}).Run(context.Background(), helperCommand("lines"), out.sink, errs.sink)
	if err != nil || code != 0 {
		t.Fatalf("code=%d err=%v", code, err)
	}
	if got := out.all(); len(got) != 3 || got[0] != "out 0" || got[2] != "out 2" {
		t.Fatalf("stdout lines: %q", got)
	}
	if got := errs.all(); len(got) != 1 || got[0] != "warning: something" {
		t.Fatalf("stderr lines: %q", got)
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	var errs lineCollector
	code, err := (&ExecRunner{}).Run(context.Background(), helperCommand("exit3"), nil, errs.sink)
	if err != nil {
		t.Fatalf("non-zero exit is not a runner error: %v", err)
	}
	if code != 3 {
		t.Fatalf("code=%d want 3", code)
	}
	if got := errs.all(); len(got) != 1 || got[0] != "error: bad" {
		t.Fatalf("stderr: %q", got)
	}
}

func TestExecRunner_LargeOutputDoesNotDeadlock(t *testing.T) {
	var out, errs lineCollector
	done := make(chan struct{})
	var code int
	var err error
	go func() {
		code, err = (&ExecRunner{}).Run(context.Background(), helperCommand("flood"), out.sink, errs.sink)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(60 * time.Second):
		t.Fatal("runner did not finish")
	}
	if err != nil || code != 0 {
		t.Fatalf("code=%d err=%v", code, err)
	}
	if n := len(out.all()); n != 20000 {
		t.Fatalf("stdout lines=%d", n)
	}
	if n := len(errs.all()); n != 20000 {
		t.Fatalf("stderr lines=%d", n)
	}
}

func TestExecRunner_LongLineWithoutNewline(t *testing.T) {
	var out lineCollector
	if _, err := (&ExecRunner{}).Run(context.Background(), helperCommand("longline"), out.sink, nil); err != nil {
		t.Fatal(err)
	}
	got := out.all()
	if len(got) != 1 || len(got[0]) != 1<<20 {
		t.Fatalf("expected one 1MiB line, got %d lines", len(got))
	}
}

func TestExecRunner_EnvPrefixMergesInherited(t *testing.T) {
	t.Setenv("VIZD_HELPER_PATHS", "/inherited")
	var out lineCollector
	cmd := helperCommand("env", EnvVar{Name: "VIZD_HELPER_PATHS", Value: "/first", Inherit: true})
	if _, err := (&ExecRunner{}).Run(context.Background(), cmd, out.sink, nil); err != nil {
		t.Fatal(err)
	}
	want := "/first" + string(os.PathListSeparator) + "/inherited"
	if got := out.all(); len(got) != 1 || got[0] != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestExecRunner_LaunchFailure(t *testing.T) {
	code, err := (&ExecRunner{}).Run(context.Background(), Command{Path: "/nonexistent/vizd-compiler"}, nil, nil)
	if code != LaunchFailedExitCode {
		t.Fatalf("code=%d want %d", code, LaunchFailedExitCode)
	}
	if !IsLaunchError(err) {
		t.Fatalf("expected launch error, got %v", err)
	}
}

func TestExecRunner_CancelTerminatesChild(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{}, 1)
	sink := func(string) {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	go func() {
		<-started
		cancel()
	}()
	begin := time.Now()
	_, err := (&ExecRunner{WaitDelay: time.Second}).Run(ctx, helperCommand("sleep"), sink, nil)
	if !IsCancelled(err) {
		t.Fatalf("expected cancelled, got %v", err)
	}
	if el := time.Since(begin); el > 30*time.Second {
		t.Fatalf("cancellation took %v", el)
	}
}

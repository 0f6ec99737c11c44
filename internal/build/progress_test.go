package build

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProgress_StdoutIsBatched(t *testing.T) {
	lines := make([]string, 23)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	b := New(Config{Toolchain: systemCXX, Runner: &spyRunner{fn: writesOutput(lines, nil)}, BatchSize: 5})
	var rec recorder
	res := b.Compile(context.Background(), Request{SourceFile: writeSource(t), OutputFile: filepath.Join(t.TempDir(), "m.so")}, rec.fn)
	if !res.Success {
		t.Fatalf("res=%+v", res)
	}
	var counts []int
	for _, e := range rec.events {
		if e.Kind == ProgressStdout {
			counts = append(counts, e.Lines)
		}
	}
	if diff := cmp.Diff([]int{5, 10, 15, 20}, counts); diff != "" {
		t.Fatalf("stdout callbacks (-want +got):\n%s", diff)
	}
	if n := rec.count(ProgressSummary); n != 1 {
		t.Fatalf("summary callbacks=%d", n)
	}
	if last := rec.events[len(rec.events)-1]; last.Kind != ProgressSummary || last.Lines != 23 {
		t.Fatalf("last event %+v", last)
	}
}

func TestProgress_StderrIsImmediate(t *testing.T) {
	run := writesOutput([]string{"a", "b", "c", "d", "e"}, []string{"err1"})
	b := New(Config{Toolchain: systemCXX, Runner: &spyRunner{fn: run}})
	var rec recorder
	b.Compile(context.Background(), Request{SourceFile: writeSource(t), OutputFile: filepath.Join(t.TempDir(), "m.so")}, rec.fn)
	if n := rec.count(ProgressStdout); n != 1 {
		t.Fatalf("stdout callbacks=%d", n)
	}
	if n := rec.count(ProgressStderr); n != 1 {
		t.Fatalf("stderr callbacks=%d", n)
	}
}

func TestProgress_EmptyLinesAreNotCounted(t *testing.T) {
	tr := newTracker(nil, 2)
	for _, l := range []string{"", "x", "  ", "y"} {
		tr.onStdout(l)
	}
	tr.onStderr("")
	if tr.lines != 2 {
		t.Fatalf("lines=%d", tr.lines)
	}
	out, errs := tr.output()
	if out != "\nx\n  \ny\n" || errs != "\n" {
		t.Fatalf("captured stdout=%q stderr=%q", out, errs)
	}
}

func TestProgress_StatusMessagesInOrder(t *testing.T) {
	b := New(Config{Toolchain: systemCXX, Runner: &spyRunner{fn: writesOutput(nil, nil)}})
	var rec recorder
	b.Compile(context.Background(), Request{SourceFile: writeSource(t), OutputFile: filepath.Join(t.TempDir(), "m.so")}, rec.fn)
	var got []string
	for _, e := range rec.events {
		if e.Kind == ProgressStatus {
			got = append(got, e.Message)
		}
	}
	want := []string{
		"Checking C++ compiler availability...",
		"Using compiler: /usr/bin/c++",
		"Preparing compilation command...",
		"Compiling module ballcell.cpp...",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("status (-want +got):\n%s", diff)
	}
}

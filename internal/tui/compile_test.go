package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"vizd/internal/build"
	"vizd/internal/visualizer"
)

func feed(m tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestCompileModel_TracksProgress(t *testing.T) {
	m := feed(NewCompileModel("spiral.cpp", nil),
		ProgressMsg{Kind: build.ProgressStatus, Message: "Compiling module spiral.cpp..."},
		ProgressMsg{Kind: build.ProgressStdout, Message: "Compiling... (10 lines)", Lines: 10},
		ProgressMsg{Kind: build.ProgressStderr, Message: "warning: unused variable"},
	)
	view := m.View()
	for _, want := range []string{"spiral.cpp", "Compiling module spiral.cpp...", "10 output lines", "warning: unused variable", "ctrl+c"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	m, cmd := m.Update(DoneMsg{Result: build.Result{Success: true}})
	if cmd == nil {
		t.Fatalf("done should quit")
	}
	res, done := m.(CompileModel).Result()
	if !done || !res.Success {
		t.Fatalf("result not recorded: %+v", res)
	}
}

func TestCompileModel_KeepsTrailingStderr(t *testing.T) {
	var msgs []tea.Msg
	for i := 0; i < maxStderr+3; i++ {
		msgs = append(msgs, ProgressMsg{Kind: build.ProgressStderr, Message: string(rune('a' + i))})
	}
	m := feed(NewCompileModel("x", nil), msgs...).(CompileModel)
	if len(m.stderr) != maxStderr || m.stderr[0] != "d" {
		t.Fatalf("stderr window: %v", m.stderr)
	}
}

func TestCompileModel_CtrlCCancels(t *testing.T) {
	cancelled := false
	m := feed(NewCompileModel("x", func() { cancelled = true }), tea.KeyMsg{Type: tea.KeyCtrlC})
	if !cancelled || !strings.Contains(m.View(), "Cancelling") {
		t.Fatalf("ctrl+c not handled")
	}
}

func TestRunCompile_HandsOffProgress(t *testing.T) {
	var out bytes.Buffer
	res, err := RunCompile(context.Background(), "job", func(ctx context.Context, progress build.ProgressFunc) build.Result {
		for i := 1; i <= 3; i++ {
			progress(build.Progress{Kind: build.ProgressStdout, Lines: i * 5})
		}
		return build.Result{Success: true, ExitCode: 0}
	}, tea.WithInput(nil), tea.WithOutput(&out), tea.WithoutRenderer())
	if err != nil {
		t.Fatalf("RunCompile: %v", err)
	}
	if !res.Success {
		t.Fatalf("result: %+v", res)
	}
}

func TestRenderGrid(t *testing.T) {
	g := visualizer.NewGrid()
	g.Resize(2, 3)
	g.SetCell(0, 0, visualizer.Color{R: 255, A: 255})
	out := RenderGrid(g, []visualizer.Line{{X1: 1, Y1: 0, X2: 1, Y2: 2}})
	if got := strings.Count(out, "\n"); got != 2 {
		t.Fatalf("rows: %d\n%s", got, out)
	}
	if strings.Count(out, "+") != 3 {
		t.Fatalf("overlay not drawn:\n%s", out)
	}
}

func TestLinePoints(t *testing.T) {
	pts := linePoints(visualizer.Line{X1: 2, Y1: 3, X2: 0, Y2: 3})
	if len(pts) != 3 || pts[0] != [2]int{0, 3} {
		t.Fatalf("points: %v", pts)
	}
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vizd/internal/build"
)

// maxStderr is the number of trailing diagnostics kept on screen.
const maxStderr = 8

// ProgressMsg carries one progress event into the event loop.
type ProgressMsg build.Progress

// DoneMsg ends the view with the compile result.
type DoneMsg struct{ Result build.Result }

// CompileModel is the bubbletea model of a running compile.
type CompileModel struct {
	title   string
	status  string
	lines   int
	stderr  []string
	summary string
	done    bool
	result  build.Result
	cancel  context.CancelFunc
}

// NewCompileModel returns a model titled title. cancel is invoked on ctrl+c.
func NewCompileModel(title string, cancel context.CancelFunc) CompileModel {
	return CompileModel{title: title, status: "Starting...", cancel: cancel}
}

func (m CompileModel) Init() tea.Cmd { return nil }

func (m CompileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.cancel != nil {
				m.cancel()
			}
			m.status = "Cancelling..."
		}
		return m, nil
	case ProgressMsg:
		switch msg.Kind {
		case build.ProgressStatus:
			m.status = msg.Message
		case build.ProgressStdout:
			m.lines = msg.Lines
		case build.ProgressStderr:
			m.stderr = append(m.stderr, msg.Message)
			if len(m.stderr) > maxStderr {
				m.stderr = m.stderr[len(m.stderr)-maxStderr:]
			}
		case build.ProgressSummary:
			m.summary = msg.Message
			m.lines = msg.Lines
		}
		return m, nil
	case DoneMsg:
		m.done = true
		m.result = msg.Result
		return m, tea.Quit
	}
	return m, nil
}

func (m CompileModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d output lines", m.lines)))
	b.WriteString("\n")
	if len(m.stderr) > 0 {
		lines := make([]string, len(m.stderr))
		for i, l := range m.stderr {
			lines[i] = stderrStyle.Render(l)
		}
		b.WriteString(panelStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	switch {
	case m.done && m.result.Success:
		b.WriteString(okStyle.Render(m.summary))
	case m.done:
		b.WriteString(failStyle.Render(m.summary))
	default:
		b.WriteString(dimStyle.Render("ctrl+c to cancel"))
	}
	b.WriteString("\n")
	return b.String()
}

// Result returns the compile result once the view has finished.
func (m CompileModel) Result() (build.Result, bool) { return m.result, m.done }

// CompileFunc runs a compile reporting to progress.
type CompileFunc func(ctx context.Context, progress build.ProgressFunc) build.Result

// RunCompile runs fn on its own goroutine while the view renders its
// progress. It returns once fn has finished, even if the user cancelled.
func RunCompile(ctx context.Context, title string, fn CompileFunc, opts ...tea.ProgramOption) (build.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := tea.NewProgram(NewCompileModel(title, cancel), opts...)
	results := make(chan build.Result, 1)
	go func() {
		res := fn(ctx, func(pr build.Progress) { p.Send(ProgressMsg(pr)) })
		results <- res
		p.Send(DoneMsg{Result: res})
	}()
	if _, err := p.Run(); err != nil {
		cancel()
		<-results
		return build.Result{}, err
	}
	return <-results, nil
}

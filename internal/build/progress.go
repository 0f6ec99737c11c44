package build

import (
	"fmt"
	"strings"
	"sync"
)

// DefaultBatchSize is the number of stdout lines between throttled callbacks.
const DefaultBatchSize = 5

// ProgressKind classifies a progress event.
type ProgressKind string

const (
	ProgressStatus  ProgressKind = "status"
	ProgressStdout  ProgressKind = "stdout"
	ProgressStderr  ProgressKind = "stderr"
	ProgressSummary ProgressKind = "summary"
)

// Progress is one event delivered to a ProgressFunc.
type Progress struct {
	Kind    ProgressKind
	Message string
	// Lines is the cumulative count of non-empty stdout lines seen so far.
	Lines int
}

func (p Progress) String() string { return p.Message }

// ProgressFunc receives progress events. Invocations are serialized.
type ProgressFunc func(Progress)

// tracker captures both output streams and throttles stdout callbacks. All
// methods may be called from the two drain goroutines concurrently.
type tracker struct {
	mu     sync.Mutex
	fn     ProgressFunc
	batch  int
	lines  int
	stdout strings.Builder
	stderr strings.Builder
}

func newTracker(fn ProgressFunc, batch int) *tracker {
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	return &tracker{fn: fn, batch: batch}
}

func (t *tracker) emitLocked(p Progress) {
	if t.fn != nil {
		t.fn(p)
	}
}

func (t *tracker) status(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.emitLocked(Progress{Kind: ProgressStatus, Message: fmt.Sprintf(format, args...), Lines: t.lines})
}

func (t *tracker) onStdout(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stdout.WriteString(line)
	t.stdout.WriteByte('\n')
	if strings.TrimSpace(line) == "" {
		return
	}
	t.lines++
	if t.lines%t.batch == 0 {
		t.emitLocked(Progress{Kind: ProgressStdout, Message: fmt.Sprintf("Compiling... (%d lines)", t.lines), Lines: t.lines})
	}
}

func (t *tracker) onStderr(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stderr.WriteString(line)
	t.stderr.WriteByte('\n')
	if strings.TrimSpace(line) == "" {
		return
	}
	t.emitLocked(Progress{Kind: ProgressStderr, Message: line, Lines: t.lines})
}

func (t *tracker) summary(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.emitLocked(Progress{Kind: ProgressSummary, Message: msg, Lines: t.lines})
}

func (t *tracker) appendStderr(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stderr.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		t.stderr.WriteByte('\n')
	}
}

func (t *tracker) output() (stdout, stderr string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stdout.String(), t.stderr.String()
}

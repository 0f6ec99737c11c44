package build

import (
	"time"

	"vizd/internal/toolchain"
)

// Request describes one compile attempt. It is treated as immutable: the
// Builder copies the slices it forwards.
type Request struct {
	SourceFile string
	OutputFile string
	// StandardOverride forces -std=<value>. Empty means auto-detect from the host.
	StandardOverride string
	// ExtraIncludePaths are appended as -I flags, in order.
	ExtraIncludePaths []string
	// ExtraFlags are appended verbatim, in order.
	ExtraFlags []string
}

func (r Request) clone() Request {
	r.ExtraIncludePaths = append([]string(nil), r.ExtraIncludePaths...)
	r.ExtraFlags = append([]string(nil), r.ExtraFlags...)
	return r
}

// Result is the outcome of a compile attempt. Success is true iff ExitCode is 0
// and OutputFile exists as a regular file after the run.
type Result struct {
	Success    bool
	ExitCode   int
	Stdout     string
	Stderr     string
	Command    string
	SourceFile string
	OutputFile string
	// Toolchain is the descriptor used; zero when resolution failed.
	Toolchain toolchain.Descriptor
	Duration  time.Duration
	// Err carries the typed failure; nil on success.
	Err error
}

package toolchain

import (
	"context"
	"io"
	"os/exec"
)

// Verifier runs a trial invocation of a compiler and reports whether it works.
type Verifier interface {
	Verify(ctx context.Context, compiler string) bool
}

// VerifyFunc adapts a function to the Verifier interface.
type VerifyFunc func(ctx context.Context, compiler string) bool

func (f VerifyFunc) Verify(ctx context.Context, compiler string) bool { return f(ctx, compiler) }

// execVerifier runs `<compiler> --version` and accepts a zero exit status.
type execVerifier struct{}

func (execVerifier) Verify(ctx context.Context, compiler string) bool {
	cmd := exec.CommandContext(ctx, compiler, "--version")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run() == nil
}

// ExecVerifier returns the default Verifier backed by os/exec.
func ExecVerifier() Verifier { return execVerifier{} }

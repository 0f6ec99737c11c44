// Package build turns a model source module into a loadable shared object.
//
// It is structured into small files by concern:
//
//   - request.go: Request (one compile attempt) and Result (its immutable outcome).
//   - command.go: Command, the synthesized invocation and its display string.
//   - synth.go, sysroot.go: the compile-command synthesizer and bundled header discovery.
//   - runner.go: Runner and the os/exec implementation streaming both pipes.
//   - progress.go: progress events and the stdout batching throttle.
//   - compile.go: Builder, the orchestrator sequencing resolve, synthesize and run.
//   - errors.go: error kinds (SourceNotFound, LaunchError, CompileError, Cancelled).
//
// Builder.Compile never returns an error or panics past its boundary; every
// failure is represented in the Result it returns.
package build

// Package toolchain locates the C++ compiler used to build model plugins.
//
// Resolution prefers a toolchain bundled with the application (never verified,
// because a relocated bundle may fail a bare smoke test), then a caller
// preferred compiler, then a fixed fallback list. The result is an immutable
// Descriptor consumed by the command synthesizer in package build.
//
// The package also owns detection of the host's C++ language standard, which
// dynamically compiled modules must match to stay ABI compatible with the host.
package toolchain

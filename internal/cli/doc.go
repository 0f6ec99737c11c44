// Package cli implements vizctl, the operator command line for compiling
// model modules, inspecting the toolchain and previewing models without the
// daemon.
package cli

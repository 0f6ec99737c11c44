// Package tui renders compile progress and model previews in the terminal.
// Progress produced on a compile goroutine is handed to the bubbletea event
// loop with Program.Send.
package tui

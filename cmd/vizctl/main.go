// Command vizctl compiles, lists and previews visualization models without a
// running daemon.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"vizd/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

package httpapi

import (
	"context"
	"time"
)

// serverBaseCtx is a process-level context that can be canceled on shutdown.
// Defaults to Background if not set.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// compileContext derives the context a compile runs under: canceled when the
// request ends, when the server shuts down, or after the compile timeout.
// The returned cancel func must be called when the handler ends.
func compileContext(req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(req)
	stop := context.AfterFunc(serverBaseCtx, cancel)
	if d := compileTimeout; d > 0 {
		var tcancel context.CancelFunc
		ctx, tcancel = context.WithTimeout(ctx, d)
		return ctx, func() { tcancel(); stop(); cancel() }
	}
	return ctx, func() { stop(); cancel() }
}

var compileTimeout time.Duration

// SetCompileTimeout bounds each compile request; zero disables the bound.
func SetCompileTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	compileTimeout = d
}

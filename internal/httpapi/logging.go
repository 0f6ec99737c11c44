package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	zlogger "github.com/rs/zerolog/log"
)

// zlog is an optional structured logger. If unset, the zerolog global logger is used.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) {
	l = l.With().Str("component", "httpapi").Logger()
	zlog = &l
}

func logger() *zerolog.Logger {
	if zlog != nil {
		return zlog
	}
	return &zlogger.Logger
}

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug", "1":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// defaultLogLevel is off until the binary sets the resolved log_level.
var defaultLogLevel = parseLevel("")

// SetDefaultLogLevel overrides the per-request default ("off", "error", "info", "debug").
func SetDefaultLogLevel(s string) { defaultLogLevel = parseLevel(s) }

// requestLogLevel applies the ?log= and X-Log-Level overrides.
func requestLogLevel(r *http.Request) LogLevel {
	if v := r.URL.Query().Get("log"); v != "" {
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// requestEvent starts an info event tagged with the request id, or nil when
// lvl is below min.
func requestEvent(r *http.Request, lvl, min LogLevel) *zerolog.Event {
	if lvl < min {
		return nil
	}
	var ev *zerolog.Event
	switch min {
	case LevelDebug:
		ev = logger().Debug()
	case LevelError:
		ev = logger().Error()
	default:
		ev = logger().Info()
	}
	ev = ev.Str("path", r.URL.Path)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		ev = ev.Str("request_id", rid)
	}
	return ev
}

package httpapi

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"info":  LevelInfo,
		"DEBUG": LevelDebug,
		"1":     LevelDebug,
		"weird": LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
	SetDefaultLogLevel("info")
	defer SetDefaultLogLevel("")
	r = httptest.NewRequest("GET", "/x", nil)
	if got := requestLogLevel(r); got != LevelInfo {
		t.Fatalf("default failed: %v", got)
	}
}

func TestDefaultLogLevel_IgnoresEnvironment(t *testing.T) {
	t.Setenv("VIZ_LOG_LEVEL", "debug")
	if got := requestLogLevel(httptest.NewRequest("GET", "/x", nil)); got != LevelOff {
		t.Fatalf("default level %v, want off until SetDefaultLogLevel", got)
	}
	SetDefaultLogLevel("debug")
	defer SetDefaultLogLevel("")
	if got := requestLogLevel(httptest.NewRequest("GET", "/x", nil)); got != LevelDebug {
		t.Fatalf("configured level %v", got)
	}
}

func TestCompileLogsStartAndEnd(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer func() { zlog = nil }()

	svc := newFake()
	svc.resp.Model = "m"
	postCompile(t, NewMux(svc), `{"model":"m"}`, "?log=info")
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte(`"compile start"`)) || !bytes.Contains([]byte(out), []byte(`"compile end"`)) {
		t.Fatalf("missing compile logs: %s", out)
	}
	if !bytes.Contains([]byte(out), []byte(`"component":"httpapi"`)) {
		t.Fatalf("missing component field: %s", out)
	}
}

func TestCompileContext_CanceledByBase(t *testing.T) {
	base, cancelBase := context.WithCancel(context.Background())
	SetBaseContext(base)
	defer SetBaseContext(nil)

	ctx, cancel := compileContext(context.Background())
	defer cancel()
	cancelBase()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("compile context not canceled by server shutdown")
	}
}

func TestCompileContext_Timeout(t *testing.T) {
	SetCompileTimeout(10 * time.Millisecond)
	defer SetCompileTimeout(0)
	ctx, cancel := compileContext(context.Background())
	defer cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("compile timeout not applied")
	}
}

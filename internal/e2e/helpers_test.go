package e2e

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"vizd/internal/app"
	"vizd/internal/config"
	"vizd/internal/httpapi"
	"vizd/internal/manager"
	"vizd/pkg/types"
)

// copyPlugins copies the named testdata sources into a fresh plugins directory.
func copyPlugins(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		b, err := os.ReadFile(filepath.Join("testdata", n))
		if err != nil {
			t.Fatalf("read testdata %s: %v", n, err)
		}
		if err := os.WriteFile(filepath.Join(dir, n), b, 0o644); err != nil {
			t.Fatalf("write plugin %s: %v", n, err)
		}
	}
	return dir
}

// testConfig points the project root at the repository so the plugin header
// is on the include path.
func testConfig(t *testing.T, pluginsDir string) config.Config {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Defaults()
	cfg.PluginsDir = pluginsDir
	cfg.ArtifactsDir = t.TempDir()
	cfg.ProjectRoot = root
	cfg.LogLevel = "off"
	return cfg
}

func newServer(t *testing.T, cfg config.Config) (*httptest.Server, *manager.Manager, *manager.MemoryPublisher) {
	t.Helper()
	log := app.NewLogger(cfg.LogLevel, os.Stderr)
	pub := manager.NewMemoryPublisher()
	mgr, err := app.Manager(cfg, &log, pub)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	if _, err := mgr.Discover(); err != nil {
		t.Fatalf("discover: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv, mgr, pub
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func httpPostJSON(t *testing.T, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

// readEvents splits an NDJSON body into progress events.
func readEvents(t *testing.T, body []byte) []types.ProgressEvent {
	t.Helper()
	var out []types.ProgressEvent
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		var ev types.ProgressEvent
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			t.Fatalf("bad ndjson line %q: %v", sc.Text(), err)
		}
		out = append(out, ev)
	}
	return out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %T from %q: %v", v, b, err)
	}
	return v
}

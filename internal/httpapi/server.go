package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vizd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.Model
	Model(name string) (types.Model, error)
	Status() types.StatusResponse
	SanityCheck(ctx context.Context) types.ToolchainStatus
	CompileRequest(ctx context.Context, req types.CompileRequest, progress func(types.ProgressEvent)) (types.CompileResponse, error)
	UnloadModel(name string) (types.UnloadResponse, error)
	Ready() bool
}

// progressBuffer is the capacity of the hand-off between a running compile
// and the handler writing NDJSON.
const progressBuffer = 64

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(corsMiddleware())
	}
	// Compression for JSON endpoints; NDJSON is not in the default type list.
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	// @Summary      List models
	// @Description  Built-in and dynamic models with their lifecycle state.
	// @Tags         models
	// @Produce      json
	// @Success      200  {object}  types.ModelsResponse
	// @Router       /models [get]
	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.ModelsResponse{Models: svc.ListModels()})
	})

	// @Summary      Get model
	// @Tags         models
	// @Produce      json
	// @Param        name  path  string  true  "Model name"
	// @Success      200  {object}  types.Model
	// @Failure      404  {object}  types.ErrorResponse
	// @Router       /models/{name} [get]
	r.Get("/models/{name}", func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Model(chi.URLParam(r, "name"))
		if err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, m)
	})

	// @Summary      Unload model
	// @Description  Unmaps a dynamic model. Refused while instances are alive.
	// @Tags         models
	// @Produce      json
	// @Param        name  path  string  true  "Model name"
	// @Success      200  {object}  types.UnloadResponse
	// @Failure      404  {object}  types.ErrorResponse
	// @Failure      409  {object}  types.ErrorResponse
	// @Router       /models/{name}/unload [post]
	r.Post("/models/{name}/unload", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		resp, err := svc.UnloadModel(name)
		if err != nil {
			if ev := requestEvent(r, requestLogLevel(r), LevelInfo); ev != nil {
				ev.Str("model", name).Err(err).Msg("unload refused")
			}
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, resp)
	})

	// @Summary      Status
	// @Tags         status
	// @Produce      json
	// @Success      200  {object}  types.StatusResponse
	// @Router       /status [get]
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Status())
	})

	// @Summary      Toolchain
	// @Description  Resolves the compiler the next compile would use.
	// @Tags         status
	// @Produce      json
	// @Success      200  {object}  types.ToolchainStatus
	// @Router       /toolchain [get]
	r.Get("/toolchain", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.SanityCheck(r.Context()))
	})

	// @Summary      Compile model
	// @Description  Compiles, loads and registers a model. Streams progress as NDJSON
	// @Description  (one types.ProgressEvent per line, the last of type "result").
	// @Description  With ?stream=0 the final types.CompileResponse is returned as JSON.
	// @Tags         compile
	// @Accept       json
	// @Produce      application/x-ndjson
	// @Param        request  body  types.CompileRequest  true  "Compile request"
	// @Param        stream   query string  false  "0 disables streaming"
	// @Success      200  {object}  types.ProgressEvent
	// @Failure      400  {object}  types.ErrorResponse
	// @Failure      409  {object}  types.ErrorResponse
	// @Failure      415  {object}  types.ErrorResponse
	// @Router       /compile [post]
	r.Post("/compile", func(w http.ResponseWriter, r *http.Request) {
		handleCompile(svc, w, r)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("no models"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

type compileOutcome struct {
	resp types.CompileResponse
	err  error
}

func handleCompile(svc Service, w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.CompileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Model) == "" && strings.TrimSpace(req.Source) == "" {
		writeJSONError(w, http.StatusBadRequest, "model or source is required")
		return
	}

	lvl := requestLogLevel(r)
	start := time.Now()
	if ev := requestEvent(r, lvl, LevelInfo); ev != nil {
		ev.Str("model", req.Model).Str("source", req.Source).Msg("compile start")
	}
	ctx, cancel := compileContext(r.Context())
	defer cancel()

	// The compile runs off the handler goroutine; progress is queued through
	// events and written here, so the response writer has a single owner.
	events := make(chan types.ProgressEvent, progressBuffer)
	done := make(chan compileOutcome, 1)
	go func() {
		resp, err := svc.CompileRequest(ctx, req, func(ev types.ProgressEvent) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		})
		done <- compileOutcome{resp: resp, err: err}
	}()

	stream := r.URL.Query().Get("stream") != "0"
	var enc *json.Encoder
	flush := func() {}
	emit := func(p types.ProgressEvent) {
		countCompileEvent(p.Type)
		if ev := requestEvent(r, lvl, LevelDebug); ev != nil {
			ev.Str("type", p.Type).Str("message", p.Message).Msg("compile progress")
		}
		if !stream {
			return
		}
		if enc == nil {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusOK)
			if f, ok := w.(http.Flusher); ok {
				flush = f.Flush
			}
			enc = json.NewEncoder(w)
		}
		_ = enc.Encode(p)
		flush()
	}

	var out compileOutcome
	for waiting := true; waiting; {
		select {
		case ev := <-events:
			emit(ev)
		case out = <-done:
			waiting = false
		}
	}
	// Every send completed before done was signaled; drain what is buffered.
	for drained := false; !drained; {
		select {
		case ev := <-events:
			emit(ev)
		default:
			drained = true
		}
	}

	status := http.StatusOK
	if out.err != nil {
		status = statusFor(out.err)
	}
	if ev := requestEvent(r, lvl, LevelInfo); ev != nil {
		ev = ev.Int("status", status).Dur("dur", time.Since(start)).Str("model", out.resp.Model).Bool("success", out.resp.Success)
		if out.err != nil {
			ev = ev.Err(out.err)
		} else if out.resp.Error != "" {
			ev = ev.Str("error_kind", out.resp.ErrorKind)
		}
		ev.Msg("compile end")
	}
	observeCompile(out.err == nil, out.resp.Success, time.Since(start))
	if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
		return
	}

	switch {
	case out.err != nil && enc == nil:
		writeJSONError(w, status, out.err.Error())
	case out.err != nil:
		emit(types.ProgressEvent{Type: "error", Message: out.err.Error()})
	case !stream:
		writeJSON(w, out.resp)
	default:
		resp := out.resp
		emit(types.ProgressEvent{Type: "result", Message: resultMessage(resp), Result: &resp})
	}
}

func resultMessage(resp types.CompileResponse) string {
	if resp.Success {
		return "model " + resp.Model + " " + resp.State
	}
	return resp.Error
}

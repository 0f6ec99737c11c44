package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace, metricsSubsystem = "vizd", "http"

var requestLabels = []string{"path", "method", "status"}

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace, Subsystem: metricsSubsystem,
		Name: "requests_total",
		Help: "HTTP requests by route pattern, method and status",
	}, requestLabels)

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace, Subsystem: metricsSubsystem,
		Name:    "request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, requestLabels)

	httpInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace, Subsystem: metricsSubsystem,
		Name: "inflight_requests",
		Help: "Requests currently being served",
	}, []string{"path"})

	compileEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace, Subsystem: metricsSubsystem,
		Name: "compile_events_total",
		Help: "Progress events produced by /compile, by event type",
	}, []string{"type"})

	// Compiles take seconds to minutes; DefBuckets tops out at 10s.
	compileRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace, Subsystem: metricsSubsystem,
		Name:    "compile_request_seconds",
		Help:    "Wall time of /compile requests by outcome",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInflight, compileEventsTotal, compileRequestDuration)
}

// statusRecorder captures the status code while passing flushes through.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (sr *statusRecorder) Unwrap() http.ResponseWriter { return sr.ResponseWriter }

// MetricsMiddleware records count, latency and concurrency per route pattern.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inflight := httpInflight.WithLabelValues(routeLabel(r))
		inflight.Inc()
		defer inflight.Dec()

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)

		// chi fills the pattern in while routing, so read it again afterwards.
		labels := prometheus.Labels{"path": routeLabel(r), "method": r.Method, "status": strconv.Itoa(sr.status)}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	})
}

// routeLabel prefers the chi route pattern so model names do not become
// label values.
func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func countCompileEvent(typ string) {
	if typ == "" {
		typ = "unspecified"
	}
	compileEventsTotal.WithLabelValues(typ).Inc()
}

// observeCompile records one finished /compile request. outcome is "rejected"
// for requests that never started, otherwise "success" or "failure".
func observeCompile(started, success bool, d time.Duration) {
	outcome := "failure"
	switch {
	case !started:
		outcome = "rejected"
	case success:
		outcome = "success"
	}
	compileRequestDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

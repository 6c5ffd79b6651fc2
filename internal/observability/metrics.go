package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Histogram bucket definitions.
var (
	httpDurationBuckets     = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	upstreamDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20}
	storeDurationBuckets    = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1}
	bodySizeBuckets         = []float64{100, 1024, 10240, 102400, 1048576}
	pageCountBuckets        = []float64{1, 2, 3, 5, 8, 12}
)

// Metrics holds all Prometheus metric instruments for the service.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestSizeBytes  *prometheus.HistogramVec
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Generation metrics
	GenerationsTotal    *prometheus.CounterVec
	GenerationDuration  *prometheus.HistogramVec
	GeneratedPagesCount prometheus.Histogram
	LLMRequestsTotal    *prometheus.CounterVec
	LLMRequestDuration  prometheus.Histogram

	// Editing metrics
	PatchesTotal           *prometheus.CounterVec
	WidgetTransitionsTotal *prometheus.CounterVec
	WidgetTransitionErrors *prometheus.CounterVec

	// Store metrics
	StoreOperationsTotal *prometheus.CounterVec
	StoreOpDuration      *prometheus.HistogramVec

	// Billing metrics
	WebhookEventsTotal     *prometheus.CounterVec
	WebhookSignatureErrors prometheus.Counter
}

// InitMetrics creates and registers all Prometheus metric instruments.
func InitMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		// HTTP
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appschmiede_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path_pattern", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "appschmiede_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: httpDurationBuckets,
		}, []string{"method", "path_pattern"}),
		HTTPRequestSizeBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "appschmiede_http_request_size_bytes",
			Help:    "HTTP request body size in bytes.",
			Buckets: bodySizeBuckets,
		}, []string{"method", "path_pattern"}),
		HTTPResponseSizeBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "appschmiede_http_response_size_bytes",
			Help:    "HTTP response body size in bytes.",
			Buckets: bodySizeBuckets,
		}, []string{"method", "path_pattern"}),

		// Generation
		GenerationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appschmiede_generations_total",
			Help: "Total number of page generations.",
		}, []string{"mode", "source"}),
		GenerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "appschmiede_generation_duration_seconds",
			Help:    "Page generation duration in seconds.",
			Buckets: upstreamDurationBuckets,
		}, []string{"mode"}),
		GeneratedPagesCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "appschmiede_generated_pages_count",
			Help:    "Number of pages produced per multi-page generation.",
			Buckets: pageCountBuckets,
		}),
		LLMRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appschmiede_llm_requests_total",
			Help: "Total number of LLM completion requests.",
		}, []string{"outcome"}),
		LLMRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "appschmiede_llm_request_duration_seconds",
			Help:    "LLM completion request duration in seconds.",
			Buckets: upstreamDurationBuckets,
		}),

		// Editing
		PatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appschmiede_patches_total",
			Help: "Total number of tree patch applications.",
		}, []string{"outcome"}),
		WidgetTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appschmiede_widget_transitions_total",
			Help: "Total number of widget state transitions.",
		}, []string{"component", "transition"}),
		WidgetTransitionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appschmiede_widget_transition_errors_total",
			Help: "Total number of rejected widget transitions.",
		}, []string{"component", "transition"}),

		// Store
		StoreOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appschmiede_store_operations_total",
			Help: "Total number of page store operations.",
		}, []string{"operation", "status"}),
		StoreOpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "appschmiede_store_operation_duration_seconds",
			Help:    "Page store operation duration in seconds.",
			Buckets: storeDurationBuckets,
		}, []string{"operation"}),

		// Billing
		WebhookEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appschmiede_webhook_events_total",
			Help: "Total number of payment webhook events by outcome.",
		}, []string{"event_type", "outcome"}),
		WebhookSignatureErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "appschmiede_webhook_signature_errors_total",
			Help: "Total number of rejected webhook signatures.",
		}),
	}

	reg.MustRegister(
		// HTTP
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestSizeBytes,
		m.HTTPResponseSizeBytes,
		// Generation
		m.GenerationsTotal,
		m.GenerationDuration,
		m.GeneratedPagesCount,
		m.LLMRequestsTotal,
		m.LLMRequestDuration,
		// Editing
		m.PatchesTotal,
		m.WidgetTransitionsTotal,
		m.WidgetTransitionErrors,
		// Store
		m.StoreOperationsTotal,
		m.StoreOpDuration,
		// Billing
		m.WebhookEventsTotal,
		m.WebhookSignatureErrors,
	)

	return m
}

// --- Recording helpers ---

// RecordHTTPRequest records HTTP request metrics.
func (m *Metrics) RecordHTTPRequest(method, pathPattern string, status int, duration time.Duration, reqSize, respSize int) {
	statusStr := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(method, pathPattern, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, pathPattern).Observe(duration.Seconds())
	m.HTTPRequestSizeBytes.WithLabelValues(method, pathPattern).Observe(float64(reqSize))
	m.HTTPResponseSizeBytes.WithLabelValues(method, pathPattern).Observe(float64(respSize))
}

// RecordGeneration records a page generation. Mode is "single" or "multi",
// source is where the page ultimately came from.
func (m *Metrics) RecordGeneration(mode, source string, duration time.Duration) {
	m.GenerationsTotal.WithLabelValues(mode, source).Inc()
	m.GenerationDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordGeneratedPages records how many pages a multi-page generation produced.
func (m *Metrics) RecordGeneratedPages(count int) {
	m.GeneratedPagesCount.Observe(float64(count))
}

// RecordLLMRequest records an LLM completion attempt.
func (m *Metrics) RecordLLMRequest(outcome string, duration time.Duration) {
	m.LLMRequestsTotal.WithLabelValues(outcome).Inc()
	m.LLMRequestDuration.Observe(duration.Seconds())
}

// RecordPatch records a tree patch application. Outcome is "applied" or "noop".
func (m *Metrics) RecordPatch(outcome string) {
	m.PatchesTotal.WithLabelValues(outcome).Inc()
}

// RecordWidgetTransition records a widget state transition.
func (m *Metrics) RecordWidgetTransition(component, transition string) {
	m.WidgetTransitionsTotal.WithLabelValues(component, transition).Inc()
}

// RecordWidgetTransitionError records a rejected widget transition.
func (m *Metrics) RecordWidgetTransitionError(component, transition string) {
	m.WidgetTransitionErrors.WithLabelValues(component, transition).Inc()
}

// RecordStoreOperation records a page store operation.
func (m *Metrics) RecordStoreOperation(operation, status string, duration time.Duration) {
	m.StoreOperationsTotal.WithLabelValues(operation, status).Inc()
	m.StoreOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordWebhookEvent records a processed payment webhook event.
func (m *Metrics) RecordWebhookEvent(eventType, outcome string) {
	m.WebhookEventsTotal.WithLabelValues(eventType, outcome).Inc()
}

// RecordWebhookSignatureError records a rejected webhook signature.
func (m *Metrics) RecordWebhookSignatureError() {
	m.WebhookSignatureErrors.Inc()
}

// --- HTTP Middleware ---

// MetricsMiddleware returns HTTP middleware that records request metrics using
// chi's route pattern (not the actual URL path) to avoid label cardinality
// explosion.
func (m *Metrics) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &metricsResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		pathPattern := routePattern(r)
		reqSize := 0
		if r.ContentLength > 0 {
			reqSize = int(r.ContentLength)
		}

		m.RecordHTTPRequest(r.Method, pathPattern, sw.status, duration, reqSize, sw.bytes)
	})
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// routePattern extracts chi's route pattern from the request context.
// Falls back to the raw URL path if no pattern is found.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	pattern := strings.Join(rctx.RoutePatterns, "")
	// chi route patterns have trailing /*, remove it.
	pattern = strings.TrimSuffix(pattern, "/*")
	if pattern == "" {
		return r.URL.Path
	}
	return pattern
}

// metricsResponseWriter wraps http.ResponseWriter to capture status and bytes.
type metricsResponseWriter struct {
	http.ResponseWriter
	status  int
	bytes   int
	written bool
}

func (w *metricsResponseWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *metricsResponseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.written = true
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

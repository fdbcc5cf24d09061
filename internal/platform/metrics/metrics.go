package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry tiene los collectors propios de la app (no usamos el default global).
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shelter",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shelter",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shelter",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	storeQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shelter",
			Subsystem: "store",
			Name:      "queries_total",
			Help:      "Record store queries by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	predictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shelter",
			Subsystem: "predictions",
			Name:      "requests_total",
			Help:      "Adoption prediction requests by outcome.",
		},
		[]string{"outcome"},
	)

	predictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shelter",
			Subsystem: "predictions",
			Name:      "upstream_duration_seconds",
			Help:      "Duration of calls to the scoring endpoint.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)

	zeroStock = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shelter",
			Subsystem: "inventory",
			Name:      "zero_stock_events_total",
			Help:      "Items whose quantity transitioned from positive to zero.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		storeQueries,
		predictions,
		predictionDuration,
		zeroStock,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler expone las métricas registradas.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler mide requests HTTP. Usa el patrón de ruta de chi como label
// para no explotar la cardinalidad con IDs/SKUs.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := routePattern(r)
		method := strings.ToUpper(r.Method)
		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordStoreQuery registra una consulta al record store.
func RecordStoreQuery(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	storeQueries.WithLabelValues(op, outcome).Inc()
}

// RecordPrediction registra el resultado de una predicción: ok | invalid | unavailable | rate_limited.
func RecordPrediction(outcome string, upstream time.Duration) {
	predictions.WithLabelValues(outcome).Inc()
	if upstream > 0 {
		predictionDuration.Observe(upstream.Seconds())
	}
}

// RecordZeroStock incrementa el contador de items agotados.
func RecordZeroStock() {
	zeroStock.Inc()
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

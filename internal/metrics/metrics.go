// Package metrics exposes Prometheus instrumentation for the web server and
// the formulation calculator.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Simplici0/soapworks/internal/formulation"
)

const namespace = "soapworks"

// Metrics owns a private registry so tests and multiple servers do not
// collide on the global one.
type Metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.HistogramVec
	formulations *prometheus.CounterVec
	quick        prometheus.Counter
	warnings     *prometheus.CounterVec
	rejected     prometheus.Counter
	exports      *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		formulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "formulations_total",
			Help:      "Formulations computed, by lye type and water method.",
		}, []string{"lye_type", "water_method"}),
		quick: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quick_calculations_total",
			Help:      "Quick lye calculations computed.",
		}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "formulation_warnings_total",
			Help:      "Advisory warnings attached to formulation results, by kind.",
		}, []string{"kind"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "formulations_rejected_total",
			Help:      "Formulation requests that failed validation.",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Documents exported, by format.",
		}, []string{"format"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.formulations,
		m.quick,
		m.warnings,
		m.rejected,
		m.exports,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request latency keyed by the matched chi route
// pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

// ObserveFormulation counts a computed formulation and its warnings.
func (m *Metrics) ObserveFormulation(req formulation.Request, warnings []formulation.Warning) {
	m.formulations.WithLabelValues(string(req.LyeType), string(req.Water.Method)).Inc()
	for _, w := range warnings {
		m.warnings.WithLabelValues(string(w.Kind)).Inc()
	}
}

// ObserveQuick counts a quick lye calculation.
func (m *Metrics) ObserveQuick() {
	m.quick.Inc()
}

// ObserveRejected counts a request that failed validation.
func (m *Metrics) ObserveRejected() {
	m.rejected.Inc()
}

// ObserveExport counts an exported document.
func (m *Metrics) ObserveExport(format string) {
	m.exports.WithLabelValues(format).Inc()
}

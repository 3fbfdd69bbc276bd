// Package telemetry exposes Prometheus metrics for fetches, view builds,
// the view cache and HTTP requests.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics methods are safe to call on a nil receiver.
type Metrics struct {
	reg          *prometheus.Registry
	fetches      *prometheus.CounterVec
	fetchLatency prometheus.Histogram
	viewBuilds   *prometheus.CounterVec
	cache        *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dash",
			Name:      "fetch_total",
			Help:      "Marketing data fetches by result.",
		}, []string{"result"}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dash",
			Name:      "fetch_duration_seconds",
			Help:      "Marketing data fetch latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		viewBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dash",
			Name:      "view_builds_total",
			Help:      "View-models rebuilt, by view.",
		}, []string{"view"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dash",
			Name:      "view_cache_total",
			Help:      "View cache lookups by result.",
		}, []string{"result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dash",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.reg.MustRegister(
		m.fetches, m.fetchLatency, m.viewBuilds, m.cache, m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveFetch(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.fetches.WithLabelValues(result).Inc()
	m.fetchLatency.Observe(d.Seconds())
}

func (m *Metrics) ViewBuilt(view string) {
	if m == nil {
		return
	}
	m.viewBuilds.WithLabelValues(view).Inc()
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cache.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cache.WithLabelValues("miss").Inc()
}

// Middleware records request latency labelled with the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		m.httpDuration.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Observe(time.Since(start).Seconds())
	})
}

// Package metrics exposes loader throughput metrics for Prometheus
// scrape during long runs.
package metrics

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// LoaderMetrics holds the per-engine load counters. Registered on a
// dedicated registry, never the global one.
type LoaderMetrics struct {
	DocumentsLoaded *prometheus.CounterVec
	BatchesTotal    *prometheus.CounterVec
	ItemsFailed     *prometheus.CounterVec
	BatchDuration   *prometheus.HistogramVec
}

// NewLoaderMetrics creates and registers the loader metrics.
func NewLoaderMetrics(reg prometheus.Registerer) *LoaderMetrics {
	m := &LoaderMetrics{
		DocumentsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docbench",
			Name:      "documents_loaded_total",
			Help:      "Documents successfully loaded per engine",
		}, []string{"engine"}),

		BatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docbench",
			Name:      "batches_total",
			Help:      "Bulk batches sent per engine",
		}, []string{"engine"}),

		ItemsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docbench",
			Name:      "items_failed_total",
			Help:      "Per-item load failures",
		}, []string{"engine", "reason"}),

		BatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "docbench",
			Name:      "batch_duration_seconds",
			Help:      "Bulk batch duration",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"engine"}),
	}

	reg.MustRegister(m.DocumentsLoaded, m.BatchesTotal, m.ItemsFailed, m.BatchDuration)
	return m
}

// HealthFunc reports the supervised connection state for /healthz.
type HealthFunc func() bool

// Serve starts the scrape listener with /metrics and /healthz and
// returns the server for shutdown. Failures are logged, not escalated:
// the listener is observability plumbing, not part of the benchmark.
func Serve(addr string, reg *prometheus.Registry, healthy HealthFunc, log *zap.Logger) *http.Server {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status := http.StatusOK
		ok := healthy == nil || healthy()
		if !ok {
			status = http.StatusServiceUnavailable
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]bool{"healthy": ok})
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("metrics listener started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics listener error", zap.Error(err))
		}
	}()

	return srv
}

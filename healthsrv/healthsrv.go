// Package healthsrv runs the shared health/metrics HTTP server used by
// the gRPC daemon: liveness and readiness probes plus a Prometheus
// scrape endpoint, with a set of counters and a histogram specific to
// targeting evaluation.
package healthsrv

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics holds the Prometheus instruments recorded on every Target
// evaluation. Construct once per process with NewMetrics and share by
// reference.
type Metrics struct {
	Requests       *prometheus.CounterVec
	EvalDuration   prometheus.Histogram
	ConfigReloads  prometheus.Counter
	ConfigReloadAt prometheus.Gauge
}

// NewMetrics registers the targeting metrics against the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return &Metrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "targeting_requests_total",
			Help: "Number of Target evaluations, partitioned by whether the result was empty.",
		}, []string{"outcome"}),
		EvalDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "targeting_eval_duration_seconds",
			Help:    "Latency of a single Target evaluation.",
			Buckets: prometheus.DefBuckets,
		}),
		ConfigReloads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "targeting_config_reloads_total",
			Help: "Number of times the active Config was swapped.",
		}),
		ConfigReloadAt: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "targeting_config_reload_timestamp_seconds",
			Help: "Unix timestamp of the most recent successful config reload.",
		}),
	}
}

// ObserveTarget records the outcome and latency of one Target call.
func (m *Metrics) ObserveTarget(tokens string, elapsed time.Duration) {
	outcome := "matched"
	if tokens == "" {
		outcome = "empty"
	}
	m.Requests.WithLabelValues(outcome).Inc()
	m.EvalDuration.Observe(elapsed.Seconds())
}

// Start starts the health/metrics server in a background goroutine and
// returns immediately. readyChecker reports whether the process holds
// a usable Config; it backs /readyz.
//
//   - /healthz - always 200 while the process is alive
//   - /readyz  - 200 once readyChecker reports true, 503 otherwise
//   - /metrics - Prometheus exposition format
func Start(logger *zap.Logger, port int, readyChecker func() bool) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			logger.Error("failed writing healthz response", zap.Error(err))
		}
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if readyChecker != nil && readyChecker() {
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte("ready")); err != nil {
				logger.Error("failed writing readyz response", zap.Error(err))
			}
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := w.Write([]byte("not ready")); err != nil {
			logger.Error("failed writing not-ready response", zap.Error(err))
		}
	})

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%d", port)
		server := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		logger.Info("starting health/metrics server", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil {
			logger.Error("health server error", zap.Error(err))
		}
	}()
}

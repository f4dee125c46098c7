package cmd

import (
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// promMetrics is the pool.Metrics adapter ssammctl plugs into the core. The
// core never imports prometheus itself; this is the host-side wiring.
type promMetrics struct {
	iterations *prometheus.HistogramVec
	operations *prometheus.CounterVec
}

var (
	promMetricsOnce   sync.Once
	sharedPromMetrics *promMetrics
)

// newPromMetrics returns the process-wide adapter. The collectors are
// registered with the default registry once; later calls (one per
// NewRootCmd) reuse them instead of registering duplicates.
func newPromMetrics() *promMetrics {
	promMetricsOnce.Do(func() { sharedPromMetrics = buildPromMetrics() })
	return sharedPromMetrics
}

func buildPromMetrics() *promMetrics {
	return &promMetrics{
		iterations: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ssamm_curve_iterations",
				Help:    "Newton iteration count per curve computation, by operation",
				Buckets: prometheus.LinearBuckets(1, 2, 10),
			},
			[]string{"op"},
		),
		operations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ssamm_operations_total",
				Help: "Total pool operations dispatched, by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
	}
}

func (m *promMetrics) ObserveIteration(op string, steps int) {
	m.iterations.WithLabelValues(op).Observe(float64(steps))
}

func (m *promMetrics) ObserveOperation(op string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.operations.WithLabelValues(op, outcome).Inc()
}

// startMetricsServer starts a Prometheus /metrics endpoint on addr in the
// background; failures after startup are logged, not fatal.
func startMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "metrics server error: %v\n", err)
		}
	}()
}

package telemetry

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run progress metrics. Suites on slow RISC-V hardware or under qemu can run
// for hours; scraping these beats watching a terminal.
var (
	FunctionsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "veccmp_functions_processed_total",
		Help: "Benchmark functions whose scalar/vector pair has been evaluated.",
	})
	ChecksumMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "veccmp_checksum_mismatches_total",
		Help: "Functions whose scalar and vector builds disagreed on the result checksum.",
	})
	VectorizedFunctions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "veccmp_vectorized_functions_total",
		Help: "Functions the oracle reports as vectorized.",
	})
	Speedup = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "veccmp_speedup",
		Help:    "Scalar-over-vector duration ratio per function.",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
	})
)

// StartMetricsServer exposes Prometheus metrics on addr in the background.
func StartMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		slog.Info("serving metrics", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("metrics server stopped", "error", err)
		}
	}()
}

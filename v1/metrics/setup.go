package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the HTTP server that
// exposes it, plus the built-in store gateway instruments.
type Metrics struct {
	// Server is the HTTP server exposing the /metrics endpoint.
	Server *http.Server

	// Registry is the isolated Prometheus registry for this process.
	// Each service keeps its own registry to prevent name collisions.
	Registry *prometheus.Registry

	opsTotal         *prometheus.CounterVec
	opDuration       *prometheus.HistogramVec
	documentsWritten prometheus.Counter
}

// NewMetrics builds a Metrics instance: a dedicated registry, the store
// gateway instruments, optional default runtime collectors, a constant
// `service` label on everything, and an HTTP server for scraping.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics emitted by this service automatically carry
	// service="<cfg.ServiceName>".
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{Registry: registry}

	m.opsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "docstore_store_operations_total",
		Help: "Total store gateway operations by name and status",
	}, []string{"op", "status"})
	m.opDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docstore_store_operation_duration_seconds",
		Help:    "Store gateway operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	m.documentsWritten = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "docstore_documents_written_total",
		Help: "Documents persisted by insert and update operations",
	})

	wrapped.MustRegister(
		m.opsTotal,
		m.opDuration,
		m.documentsWritten,
	)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	return m
}

// ObserveOp implements StoreObserver.
func (m *Metrics) ObserveOp(op, status string, start time.Time) {
	m.opsTotal.WithLabelValues(op, status).Inc()
	m.opDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// AddDocumentsWritten implements StoreObserver.
func (m *Metrics) AddDocumentsWritten(n int) {
	m.documentsWritten.Add(float64(n))
}

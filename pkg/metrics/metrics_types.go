package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the aff4 image stream engine.
type Registry struct {
	// Codec metrics
	ChunksCompressedTotal   *prometheus.CounterVec
	ChunksDecompressedTotal *prometheus.CounterVec
	CompressionErrorsTotal  *prometheus.CounterVec
	CompressionDuration     *prometheus.HistogramVec
	DecompressionDuration   *prometheus.HistogramVec

	// Write pipeline metrics
	BytesWrittenTotal prometheus.Counter
	ChunksWrittenTotal prometheus.Counter
	BevyFlushesTotal  prometheus.Counter
	BevyFlushDuration prometheus.Histogram

	// Read pipeline metrics
	BytesReadTotal  prometheus.Counter
	ChunksReadTotal prometheus.Counter
	ReadErrorsTotal *prometheus.CounterVec

	// Stream-level gauges
	StreamSizeBytes      prometheus.Gauge
	StreamCompressionRatio prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// defaultRegistry is the global metrics registry
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initCodecMetrics()
	r.initWriteMetrics()
	r.initReadMetrics()
	r.initStreamMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initCodecMetrics() {
	r.ChunksCompressedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "aff4_chunks_compressed_total",
			Help: "Total number of chunks compressed, by method",
		},
		[]string{"method"},
	)

	r.ChunksDecompressedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "aff4_chunks_decompressed_total",
			Help: "Total number of chunks decompressed, by method",
		},
		[]string{"method"},
	)

	r.CompressionErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "aff4_compression_errors_total",
			Help: "Total number of compression/decompression failures, by method and direction",
		},
		[]string{"method", "direction"},
	)

	r.CompressionDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aff4_compression_duration_seconds",
			Help:    "Chunk compression duration in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
		[]string{"method"},
	)

	r.DecompressionDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aff4_decompression_duration_seconds",
			Help:    "Chunk decompression duration in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
		[]string{"method"},
	)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initReadMetrics() {
	r.BytesReadTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "aff4_bytes_read_total",
			Help: "Total number of logical bytes returned by Read",
		},
	)

	r.ChunksReadTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "aff4_chunks_read_total",
			Help: "Total number of chunks decoded from bevies",
		},
	)

	r.ReadErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "aff4_read_errors_total",
			Help: "Total number of aborted reads, by reason",
		},
		[]string{"reason"},
	)
}

func (r *Registry) initStreamMetrics() {
	r.StreamSizeBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "aff4_stream_size_bytes",
			Help: "Logical size of the stream in bytes",
		},
	)

	r.StreamCompressionRatio = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "aff4_stream_compression_ratio",
			Help: "Uncompressed size divided by compressed size, for the most recently flushed bevy",
		},
	)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initWriteMetrics() {
	r.BytesWrittenTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "aff4_bytes_written_total",
			Help: "Total number of logical bytes accepted by Write",
		},
	)

	r.ChunksWrittenTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "aff4_chunks_written_total",
			Help: "Total number of chunks flushed into bevies",
		},
	)

	r.BevyFlushesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "aff4_bevy_flushes_total",
			Help: "Total number of bevies flushed to the volume",
		},
	)

	r.BevyFlushDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aff4_bevy_flush_duration_seconds",
			Help:    "Time to serialize and persist one bevy",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1.0},
		},
	)
}

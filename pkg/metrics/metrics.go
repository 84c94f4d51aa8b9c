package metrics

import (
	"time"
)

// RecordCompression records a successful chunk compression.
func (r *Registry) RecordCompression(method string, duration time.Duration) {
	r.ChunksCompressedTotal.WithLabelValues(method).Inc()
	r.CompressionDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordDecompression records a successful chunk decompression.
func (r *Registry) RecordDecompression(method string, duration time.Duration) {
	r.ChunksDecompressedTotal.WithLabelValues(method).Inc()
	r.DecompressionDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordCompressionError records a failed compression or decompression.
func (r *Registry) RecordCompressionError(method, direction string) {
	r.CompressionErrorsTotal.WithLabelValues(method, direction).Inc()
}

// RecordWrite records bytes accepted and chunks flushed by one Write call.
func (r *Registry) RecordWrite(bytesAccepted int, chunksFlushed int) {
	r.BytesWrittenTotal.Add(float64(bytesAccepted))
	r.ChunksWrittenTotal.Add(float64(chunksFlushed))
}

// RecordBevyFlush records one bevy flush to the volume.
func (r *Registry) RecordBevyFlush(duration time.Duration, uncompressed, compressed int) {
	r.BevyFlushesTotal.Inc()
	r.BevyFlushDuration.Observe(duration.Seconds())
	if compressed > 0 {
		r.StreamCompressionRatio.Set(float64(uncompressed) / float64(compressed))
	}
}

// RecordRead records bytes returned and chunks decoded by one Read call.
func (r *Registry) RecordRead(bytesReturned int, chunksDecoded int) {
	r.BytesReadTotal.Add(float64(bytesReturned))
	r.ChunksReadTotal.Add(float64(chunksDecoded))
}

// RecordReadError records an aborted read.
func (r *Registry) RecordReadError(reason string) {
	r.ReadErrorsTotal.WithLabelValues(reason).Inc()
}

// SetStreamSize updates the stream size gauge.
func (r *Registry) SetStreamSize(size int64) {
	r.StreamSizeBytes.Set(float64(size))
}

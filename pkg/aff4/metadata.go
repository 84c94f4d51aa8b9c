package aff4

import (
	"context"
	"errors"

	"github.com/dd0wney/aff4image/pkg/aff4resolver"
	"github.com/dd0wney/aff4image/pkg/logging"
)

// loadFromURN initializes the stream's configuration from the resolver
// (spec §4.6's LoadFromURN). A missing AFF4_STORED attribute is
// NOT_FOUND; an unrecognized compression URN is NOT_IMPLEMENTED.
// Missing chunkSize/chunksPerSegment/compression attributes fall back to
// DefaultChunkSize/DefaultChunksPerSegment/DefaultCompression and a
// missing size to 0; the result is then validated through NewConfig.
func (s *Stream) loadFromURN(ctx context.Context) error {
	volumeURN, err := s.resolver.GetString(ctx, s.urn, PredicateStored)
	if err != nil {
		if errors.Is(err, aff4resolver.ErrNotFound) {
			return newError("Load", KindNotFound, s.urn, err)
		}
		return newError("Load", KindIOError, s.urn, err)
	}
	s.volumeURN = volumeURN

	chunkSize := DefaultChunkSize
	if v, err := s.resolver.GetInt(ctx, s.urn, PredicateImageChunkSize); err == nil {
		chunkSize = int(v)
	}

	chunksPerSegment := DefaultChunksPerSegment
	if v, err := s.resolver.GetInt(ctx, s.urn, PredicateChunksPerSegment); err == nil {
		chunksPerSegment = int(v)
	}

	size := int64(0)
	if v, err := s.resolver.GetInt(ctx, s.urn, PredicateStreamSize); err == nil {
		size = v
	}

	compression := DefaultCompression
	if compressionURN, err := s.resolver.GetString(ctx, s.urn, PredicateImageCompression); err == nil {
		method, ok := CompressionFromURN(compressionURN)
		if !ok {
			s.logger.Error("unsupported compression method",
				logging.StreamURN(s.urn), logging.String("compression_urn", compressionURN))
			return newError("Load", KindNotImplemented, s.urn, nil)
		}
		compression = method
	}

	cfg, err := NewConfig(Config{ChunkSize: chunkSize, ChunksPerSegment: chunksPerSegment, Compression: compression})
	if err != nil {
		return newError("Load", KindGenericError, s.urn, err)
	}

	s.chunkSize = cfg.ChunkSize
	s.chunksPerSegment = cfg.ChunksPerSegment
	s.compression = cfg.Compression
	s.size = size

	s.bevyNumber = bevyCountFor(size, cfg.ChunkSize, cfg.ChunksPerSegment)

	s.metrics.SetStreamSize(s.size)
	return nil
}

// bevyCountFor derives the next bevy number to write to when reopening
// a stream for append: the number of bevies a flushed stream of the
// given size occupies, counting a partially filled final bevy. This is
// used only to continue numbering bevies on reopen for append; streams
// opened purely for reading never consult it.
func bevyCountFor(size int64, chunkSize, chunksPerSegment int) int {
	if chunkSize <= 0 || chunksPerSegment <= 0 {
		return 0
	}
	chunkCount := (size + int64(chunkSize) - 1) / int64(chunkSize)
	return int((chunkCount + int64(chunksPerSegment) - 1) / int64(chunksPerSegment))
}

// Flush persists any buffered data as a final, possibly short, chunk,
// rolls over the current bevy, and syncs the stream's attributes to the
// resolver (spec §4.6's Flush). It is a no-op when the stream is not
// dirty.
func (s *Stream) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(ctx)
}

func (s *Stream) flushLocked(ctx context.Context) error {
	if !s.dirty {
		return nil
	}

	if len(s.buffer) > 0 {
		if err := s.flushChunk(s.buffer); err != nil {
			return err
		}
		s.metrics.RecordWrite(0, 1)
		s.buffer = nil
	}
	if err := s.flushBevy(); err != nil {
		return err
	}

	if err := s.resolver.SetString(ctx, s.urn, PredicateType, ImageTypeURN); err != nil {
		return newError("Flush", KindIOError, s.urn, err)
	}
	if err := s.resolver.SetString(ctx, s.urn, PredicateStored, s.volumeURN); err != nil {
		return newError("Flush", KindIOError, s.urn, err)
	}
	if err := s.resolver.SetInt(ctx, s.urn, PredicateImageChunkSize, int64(s.chunkSize)); err != nil {
		return newError("Flush", KindIOError, s.urn, err)
	}
	if err := s.resolver.SetInt(ctx, s.urn, PredicateChunksPerSegment, int64(s.chunksPerSegment)); err != nil {
		return newError("Flush", KindIOError, s.urn, err)
	}
	if err := s.resolver.SetInt(ctx, s.urn, PredicateStreamSize, s.size); err != nil {
		return newError("Flush", KindIOError, s.urn, err)
	}
	if err := s.resolver.SetString(ctx, s.urn, PredicateImageCompression, s.compression.URN()); err != nil {
		return newError("Flush", KindIOError, s.urn, err)
	}

	s.dirty = false
	s.logger.Info("stream flushed", logging.StreamURN(s.urn), logging.Int64("size", s.size))
	return nil
}

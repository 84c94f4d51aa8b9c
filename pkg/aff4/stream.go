// Package aff4 implements the AFF4 chunked image stream: a
// content-addressable, chunked, compressed binary stream packed into
// fixed-size "bevies" and stored as members of an external volume (spec
// §1-§6). The engine is split by concern: codec.go (compression),
// bevy.go (bevy accumulation), writer.go (write pipeline), reader.go
// (read pipeline), metadata.go (resolver sync) — all joined here by the
// Stream type, the package's public surface.
package aff4

import (
	"context"
	"fmt"
	"sync"

	"github.com/dd0wney/aff4image/pkg/aff4resolver"
	"github.com/dd0wney/aff4image/pkg/aff4volume"
	"github.com/dd0wney/aff4image/pkg/logging"
	"github.com/dd0wney/aff4image/pkg/metrics"
)

// Stream is an AFF4 image stream: a chunked, compressed, seekable byte
// stream backed by a Volume (bevy storage) and a Resolver (attribute
// metadata), per spec §6. It corresponds to the original's AFF4Image.
type Stream struct {
	mu sync.Mutex

	urn       string
	volumeURN string

	volume   aff4volume.Volume
	resolver aff4resolver.Resolver
	logger   logging.Logger
	metrics  *metrics.Registry

	chunkSize        int
	chunksPerSegment int
	compression      Compression

	size       int64
	readptr    int64
	dirty      bool
	bevyNumber int

	buffer           []byte
	bevy             *bevyBuilder
	chunkCountInBevy int
}

// Option configures optional collaborators on a new or opened Stream.
type Option func(*Stream)

// WithLogger overrides the stream's logger. The default is a no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Stream) { s.logger = l }
}

// WithMetrics overrides the stream's metrics registry. The default is the
// package-level DefaultRegistry.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Stream) { s.metrics = r }
}

func newStream(urn, volumeURN string, volume aff4volume.Volume, resolver aff4resolver.Resolver, opts []Option) *Stream {
	s := &Stream{
		urn:       urn,
		volumeURN: volumeURN,
		volume:    volume,
		resolver:  resolver,
		logger:    logging.NopLogger{},
		metrics:   metrics.DefaultRegistry(),
		bevy:      newBevyBuilder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewImage creates a new image stream named urn, stored in the volume
// named volumeURN, configured with cfg (spec §4.1's NewAFF4Image plus
// the Config options spec §6 exposes to callers). The stream's
// attributes are written to the resolver immediately so a concurrent
// Load of the same URN observes a consistent type/stored pair, matching
// the original's NewAFF4Image which sets AFF4_TYPE/AFF4_STORED up front.
func NewImage(ctx context.Context, urn, volumeURN string, volume aff4volume.Volume, resolver aff4resolver.Resolver, cfg Config, opts ...Option) (*Stream, error) {
	cfg, err := NewConfig(cfg)
	if err != nil {
		return nil, newError("NewImage", KindGenericError, urn, err)
	}

	s := newStream(urn, volumeURN, volume, resolver, opts)
	s.chunkSize = cfg.ChunkSize
	s.chunksPerSegment = cfg.ChunksPerSegment
	s.compression = cfg.Compression

	if err := resolver.SetString(ctx, urn, PredicateType, ImageTypeURN); err != nil {
		return nil, newError("NewImage", KindIOError, urn, err)
	}
	if err := resolver.SetString(ctx, urn, PredicateStored, volumeURN); err != nil {
		return nil, newError("NewImage", KindIOError, urn, err)
	}

	s.logger.Info("image stream created",
		logging.StreamURN(urn),
		logging.Compression(cfg.Compression.String()),
		logging.Int("chunkSize", cfg.ChunkSize),
		logging.Int("chunksPerSegment", cfg.ChunksPerSegment),
	)
	return s, nil
}

// OpenImage loads an existing image stream's attributes from the
// resolver (spec §4.6's LoadFromURN) and returns a Stream ready for
// Read/Seek. It is an error — NOT_FOUND — if urn has no AFF4_STORED
// attribute, matching the original.
func OpenImage(ctx context.Context, urn string, volume aff4volume.Volume, resolver aff4resolver.Resolver, opts ...Option) (*Stream, error) {
	s := newStream(urn, "", volume, resolver, opts)
	if err := s.loadFromURN(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// URN returns the stream's identifier.
func (s *Stream) URN() string {
	return s.urn
}

// Size returns the current logical size of the stream in bytes.
func (s *Stream) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Stats returns a snapshot of the stream's bookkeeping state.
func (s *Stream) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Size:             s.size,
		ChunkSize:        s.chunkSize,
		ChunksPerSegment: s.chunksPerSegment,
		BevyNumber:       s.bevyNumber,
		ChunkCountInBevy: s.chunkCountInBevy,
		Compression:      s.compression,
		Dirty:            s.dirty,
	}
}

// Seek repositions the stream's read cursor, following io.Seeker
// semantics restricted to the subset the original supports: SeekStart,
// SeekCurrent, and SeekEnd.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target int64
	switch whence {
	case 0: // io.SeekStart
		target = offset
	case 1: // io.SeekCurrent
		target = s.readptr + offset
	case 2: // io.SeekEnd
		target = s.size + offset
	default:
		return 0, newError("Seek", KindGenericError, s.urn, fmt.Errorf("invalid whence %d", whence))
	}
	if target < 0 {
		return 0, newError("Seek", KindGenericError, s.urn, fmt.Errorf("negative seek target %d", target))
	}
	s.readptr = target
	return s.readptr, nil
}

// Close flushes any pending writes and releases the stream. The
// underlying Volume is owned by the caller and is not closed here.
func (s *Stream) Close() error {
	return s.Flush(context.Background())
}

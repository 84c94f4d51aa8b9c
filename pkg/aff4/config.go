package aff4

import (
	"github.com/dd0wney/aff4image/pkg/validation"
)

// Default configuration values, per spec §3/§6.
const (
	DefaultChunkSize        = 32 * 1024
	DefaultChunksPerSegment = 1024
	DefaultCompression      = CompressionZlib
)

// Config holds the three configuration options a caller may set on a new
// image stream (spec §6). Zero values are replaced by their defaults in
// NewConfig.
type Config struct {
	ChunkSize        int
	ChunksPerSegment int
	Compression      Compression
}

// NewConfig applies defaults to any zero field of a partially specified
// Config and validates the result.
func NewConfig(c Config) (Config, error) {
	out := Config{
		ChunkSize:        validation.DefaultOrInt(c.ChunkSize, DefaultChunkSize),
		ChunksPerSegment: validation.DefaultOrInt(c.ChunksPerSegment, DefaultChunksPerSegment),
		Compression:      c.Compression,
	}
	if out.Compression == CompressionUnknown {
		out.Compression = DefaultCompression
	}

	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

// Validate checks the configuration's invariants using the same
// ConfigValidator fluent pattern the rest of the pack's config validates
// with, plus go-playground/validator struct-tag validation for the
// request-shaped view of the same fields.
func (c Config) Validate() error {
	cv := validation.NewConfigValidator("aff4.Config").
		Positive("ChunkSize", c.ChunkSize).
		Positive("ChunksPerSegment", c.ChunksPerSegment)
	if cv.HasErrors() {
		return cv.Validate()
	}

	req := &validation.StreamConfigRequest{
		ChunkSize:        c.ChunkSize,
		ChunksPerSegment: c.ChunksPerSegment,
		Compression:      c.Compression.String(),
	}
	return validation.ValidateStreamConfigRequest(req)
}

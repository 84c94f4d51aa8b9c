package validation

import "testing"

func TestConfigValidator_ChunkSize(t *testing.T) {
	cv := NewConfigValidator("StreamConfig").
		Positive("ChunkSize", 32768).
		Positive("ChunksPerSegment", 1024).
		OneOf("Compression", "zlib", []string{"stored", "zlib", "snappy"})

	if cv.HasErrors() {
		t.Fatalf("expected no errors, got: %v", cv.Errors())
	}
}

func TestConfigValidator_InvalidChunkSize(t *testing.T) {
	cv := NewConfigValidator("StreamConfig").
		Positive("ChunkSize", 0)

	if !cv.HasErrors() {
		t.Fatal("expected an error for non-positive chunk size")
	}
}

func TestDefaultOrInt(t *testing.T) {
	if got := DefaultOrInt(0, 32768); got != 32768 {
		t.Errorf("expected default 32768, got %d", got)
	}
	if got := DefaultOrInt(4096, 32768); got != 4096 {
		t.Errorf("expected explicit value 4096, got %d", got)
	}
}

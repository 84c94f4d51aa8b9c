package validation

import "testing"

func TestValidateStreamConfigRequest_Valid(t *testing.T) {
	req := &StreamConfigRequest{
		ChunkSize:        32768,
		ChunksPerSegment: 1024,
		Compression:      "zlib",
	}

	if err := ValidateStreamConfigRequest(req); err != nil {
		t.Fatalf("expected valid config, got error: %v", err)
	}
}

func TestValidateStreamConfigRequest_Nil(t *testing.T) {
	if err := ValidateStreamConfigRequest(nil); err == nil {
		t.Fatal("expected error for nil request")
	}
}

func TestValidateStreamConfigRequest_ZeroChunkSize(t *testing.T) {
	req := &StreamConfigRequest{
		ChunkSize:        0,
		ChunksPerSegment: 1024,
		Compression:      "zlib",
	}

	if err := ValidateStreamConfigRequest(req); err == nil {
		t.Fatal("expected error for zero chunk size")
	}
}

func TestValidateStreamConfigRequest_UnknownCompression(t *testing.T) {
	req := &StreamConfigRequest{
		ChunkSize:        32768,
		ChunksPerSegment: 1024,
		Compression:      "lzma",
	}

	if err := ValidateStreamConfigRequest(req); err == nil {
		t.Fatal("expected error for unknown compression method")
	}
}

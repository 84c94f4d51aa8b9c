package aff4resolver

import (
	"context"
	"errors"
	"testing"
)

func TestMemResolver_StringRoundTrip(t *testing.T) {
	r := NewMemResolver()
	ctx := context.Background()

	if err := r.SetString(ctx, "aff4://stream-1", "schema#stored", "zlib"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	got, err := r.GetString(ctx, "aff4://stream-1", "schema#stored")
	if err != nil {
		t.Fatalf("GetString: %v", err)
	}
	if got != "zlib" {
		t.Errorf("expected %q, got %q", "zlib", got)
	}
}

func TestMemResolver_GetStringMissing(t *testing.T) {
	r := NewMemResolver()
	_, err := r.GetString(context.Background(), "aff4://stream-1", "schema#stored")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemResolver_IntRoundTrip(t *testing.T) {
	r := NewMemResolver()
	ctx := context.Background()

	if err := r.SetInt(ctx, "aff4://stream-1", "schema#chunkSize", 32768); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	got, err := r.GetInt(ctx, "aff4://stream-1", "schema#chunkSize")
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	if got != 32768 {
		t.Errorf("expected 32768, got %d", got)
	}
}

func TestMemResolver_GetIntMissing(t *testing.T) {
	r := NewMemResolver()
	_, err := r.GetInt(context.Background(), "aff4://stream-1", "schema#chunkSize")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemResolver_SubjectsAreIndependent(t *testing.T) {
	r := NewMemResolver()
	ctx := context.Background()

	r.SetString(ctx, "aff4://stream-1", "schema#stored", "zlib")
	r.SetString(ctx, "aff4://stream-2", "schema#stored", "snappy")

	a, _ := r.GetString(ctx, "aff4://stream-1", "schema#stored")
	b, _ := r.GetString(ctx, "aff4://stream-2", "schema#stored")
	if a != "zlib" || b != "snappy" {
		t.Errorf("expected independent subjects, got %q and %q", a, b)
	}
}

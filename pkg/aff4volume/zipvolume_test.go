package aff4volume

import (
	"io"
	"path/filepath"
	"testing"
)

func TestZipVolume_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volume.zip")

	wv, err := CreateZipVolume(path)
	if err != nil {
		t.Fatalf("CreateZipVolume: %v", err)
	}

	w, err := wv.CreateMember("stream/00000000")
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	if _, err := w.Write([]byte("ABCDEFGHIJ")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("member Close: %v", err)
	}
	if err := wv.Close(); err != nil {
		t.Fatalf("volume Close: %v", err)
	}

	rv, err := OpenZipVolume(path)
	if err != nil {
		t.Fatalf("OpenZipVolume: %v", err)
	}
	defer rv.Close()

	r, size, err := rv.OpenMember("stream/00000000")
	if err != nil {
		t.Fatalf("OpenMember: %v", err)
	}
	defer r.Close()

	if size != 10 {
		t.Errorf("expected size 10, got %d", size)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "ABCDEFGHIJ" {
		t.Errorf("expected %q, got %q", "ABCDEFGHIJ", got)
	}
}

func TestZipVolume_OpenMissingMember(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volume.zip")
	wv, _ := CreateZipVolume(path)
	wv.Close()

	rv, err := OpenZipVolume(path)
	if err != nil {
		t.Fatalf("OpenZipVolume: %v", err)
	}
	defer rv.Close()

	_, _, err = rv.OpenMember("missing")
	if err == nil {
		t.Fatal("expected error opening missing member")
	}
}

package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for common component names
func Component(name string) Field {
	return String("component", name)
}

// StreamURN identifies the image stream an entry concerns.
func StreamURN(urn string) Field {
	return String("stream_urn", urn)
}

// BevyNumber identifies the bevy an entry concerns.
func BevyNumber(n int) Field {
	return Int("bevy_number", n)
}

// ChunkID identifies the chunk an entry concerns.
func ChunkID(id int) Field {
	return Int("chunk_id", id)
}

// Compression records the compression method an entry concerns.
func Compression(method string) Field {
	return String("compression", method)
}

// Offset records the stream byte offset an entry concerns.
func Offset(off int64) Field {
	return Int64("offset", off)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}

// Package aff4resolver implements the metadata store capability the
// stream engine uses to load and persist per-stream attributes (chunk
// size, chunks-per-segment, compression method, size) keyed by subject
// URN and predicate URN (spec §1 "Resolver", §4.6 "Metadata sync", §9).
package aff4resolver

import (
	"context"
	"errors"
)

// ErrNotFound is returned by GetString/GetInt when no value is stored for the
// given subject/predicate pair.
var ErrNotFound = errors.New("aff4resolver: attribute not found")

// Resolver is the metadata store capability: a typed key/value store
// keyed by (subject URN, predicate URN), per spec §9's "get/set typed
// predicate" design note. Implementations are not required to be
// transactional across calls; the stream engine serializes its own
// metadata sync (spec §4.6).
type Resolver interface {
	GetString(ctx context.Context, subject, predicate string) (string, error)
	SetString(ctx context.Context, subject, predicate, value string) error

	GetInt(ctx context.Context, subject, predicate string) (int64, error)
	SetInt(ctx context.Context, subject, predicate string, value int64) error
}

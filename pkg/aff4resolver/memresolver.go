package aff4resolver

import (
	"context"
	"strconv"
	"sync"
)

// MemResolver is the in-memory Resolver fake spec §9 calls for test
// suites to substitute in place of a real metadata store. All values are
// stored as strings internally; GetInt/SetInt convert at the boundary so
// a MemResolver round-trips the same way a real store backed by a text
// column would.
type MemResolver struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

// NewMemResolver creates an empty in-memory resolver.
func NewMemResolver() *MemResolver {
	return &MemResolver{values: make(map[string]map[string]string)}
}

func (r *MemResolver) GetString(_ context.Context, subject, predicate string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	preds, ok := r.values[subject]
	if !ok {
		return "", ErrNotFound
	}
	value, ok := preds[predicate]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (r *MemResolver) SetString(_ context.Context, subject, predicate, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	preds, ok := r.values[subject]
	if !ok {
		preds = make(map[string]string)
		r.values[subject] = preds
	}
	preds[predicate] = value
	return nil
}

func (r *MemResolver) GetInt(ctx context.Context, subject, predicate string) (int64, error) {
	value, err := r.GetString(ctx, subject, predicate)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *MemResolver) SetInt(ctx context.Context, subject, predicate string, value int64) error {
	return r.SetString(ctx, subject, predicate, strconv.FormatInt(value, 10))
}

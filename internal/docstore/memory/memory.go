// Package memory provides an in-process docstore backend used for tests and
// single-node development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/meshwork-social/meshwork/internal/docstore"
)

// Backend keeps every collection in an insertion-ordered slice guarded by a
// single RWMutex, so each operation is individually atomic.
type Backend struct {
	mu   sync.RWMutex
	data map[string][]docstore.RawRecord
}

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{data: make(map[string][]docstore.RawRecord)}
}

func (b *Backend) Insert(_ context.Context, collection string, rec docstore.RawRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec.Doc = append([]byte(nil), rec.Doc...)
	b.data[collection] = append(b.data[collection], rec)
	return nil
}

func (b *Backend) List(_ context.Context, collection string) ([]docstore.RawRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	recs := b.data[collection]
	// Copy so callers never observe in-place mutation.
	out := make([]docstore.RawRecord, len(recs))
	for i, r := range recs {
		r.Doc = append([]byte(nil), r.Doc...)
		out[i] = r
	}
	return out, nil
}

func (b *Backend) Update(_ context.Context, collection, id string, doc []byte, updatedAt time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	recs := b.data[collection]
	for i := range recs {
		if recs[i].ID == id {
			recs[i].Doc = append([]byte(nil), doc...)
			recs[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return docstore.ErrNotFound
}

func (b *Backend) Delete(_ context.Context, collection, id string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	recs := b.data[collection]
	for i := range recs {
		if recs[i].ID == id {
			b.data[collection] = append(recs[:i:i], recs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (b *Backend) Ping(context.Context) error { return nil }

func (b *Backend) Close() error { return nil }

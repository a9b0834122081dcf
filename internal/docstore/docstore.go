// Package docstore is a generic document store for schemaless records.
//
// Every concept owns one or more private collections and resolves all of its
// persistence through them; no two concepts ever share a collection. Records
// carry a store-assigned opaque id plus creation and update timestamps, and
// cross-concept references are always ids, never embedded records.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by mutating operations when no record matches the
// filter. Read operations report absence as a nil record instead.
var ErrNotFound = errors.New("docstore: no matching record")

// Filter selects records by exact match on document JSON fields. The special
// key "id" matches the store-assigned record id.
type Filter map[string]any

// Fields is a partial document merged into an existing record on update.
type Fields map[string]any

// Record is one persisted document with its store-assigned metadata.
type Record[T any] struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Doc       T         `json:"doc"`
}

// RawRecord is the backend-level representation of a stored document.
type RawRecord struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Doc       []byte
}

// Backend is the driver surface shared by every collection of one store.
// Implementations live under docstore/<driver>/ (memory, sqlite, postgres).
// List returns all records of a collection in insertion order; filtering is
// done above the backend as an explicit full scan, which is acceptable at
// this system's scale.
type Backend interface {
	Insert(ctx context.Context, collection string, rec RawRecord) error
	List(ctx context.Context, collection string) ([]RawRecord, error)
	Update(ctx context.Context, collection, id string, doc []byte, updatedAt time.Time) error
	Delete(ctx context.Context, collection, id string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// Collection provides typed access to one named collection of a backend.
type Collection[T any] struct {
	backend Backend
	name    string
}

// NewCollection binds a typed collection to a backend. Collection names are
// chosen by the owning concept and must be unique within the store.
func NewCollection[T any](b Backend, name string) *Collection[T] {
	return &Collection[T]{backend: b, name: name}
}

// CreateOne assigns an id and timestamps, persists the document and returns
// the full record.
func (c *Collection[T]) CreateOne(ctx context.Context, doc T) (*Record[T], error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	raw := RawRecord{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now, Doc: body}
	if err := c.backend.Insert(ctx, c.name, raw); err != nil {
		return nil, err
	}
	return decode[T](raw)
}

// ReadOne returns the first record matching the filter, or nil when no record
// matches. Absence is a normal outcome, not an error.
func (c *Collection[T]) ReadOne(ctx context.Context, filter Filter) (*Record[T], error) {
	raw, err := c.findOne(ctx, filter)
	if err != nil || raw == nil {
		return nil, err
	}
	return decode[T](*raw)
}

// ReadMany returns every record matching the filter in insertion order.
func (c *Collection[T]) ReadMany(ctx context.Context, filter Filter) ([]*Record[T], error) {
	raws, err := c.backend.List(ctx, c.name)
	if err != nil {
		return nil, err
	}
	var out []*Record[T]
	for _, raw := range raws {
		ok, err := matches(raw, filter)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		rec, err := decode[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// PartialUpdateOne merges fields into the first matching record and refreshes
// its update timestamp. Returns ErrNotFound when nothing matches.
func (c *Collection[T]) PartialUpdateOne(ctx context.Context, filter Filter, fields Fields) (*Record[T], error) {
	raw, err := c.findOne(ctx, filter)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNotFound
	}

	var docFields map[string]any
	if err := json.Unmarshal(raw.Doc, &docFields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		docFields[k] = normalize(v)
	}
	merged, err := json.Marshal(docFields)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := c.backend.Update(ctx, c.name, raw.ID, merged, now); err != nil {
		return nil, err
	}
	return decode[T](RawRecord{ID: raw.ID, CreatedAt: raw.CreatedAt, UpdatedAt: now, Doc: merged})
}

// DeleteOne removes the first matching record and reports whether a record
// was removed.
func (c *Collection[T]) DeleteOne(ctx context.Context, filter Filter) (bool, error) {
	raw, err := c.findOne(ctx, filter)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	return c.backend.Delete(ctx, c.name, raw.ID)
}

func (c *Collection[T]) findOne(ctx context.Context, filter Filter) (*RawRecord, error) {
	raws, err := c.backend.List(ctx, c.name)
	if err != nil {
		return nil, err
	}
	for _, raw := range raws {
		ok, err := matches(raw, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			return &raw, nil
		}
	}
	return nil, nil
}

func decode[T any](raw RawRecord) (*Record[T], error) {
	var doc T
	if err := json.Unmarshal(raw.Doc, &doc); err != nil {
		return nil, err
	}
	return &Record[T]{ID: raw.ID, CreatedAt: raw.CreatedAt, UpdatedAt: raw.UpdatedAt, Doc: doc}, nil
}

func matches(raw RawRecord, filter Filter) (bool, error) {
	if len(filter) == 0 {
		return true, nil
	}
	var docFields map[string]any
	if err := json.Unmarshal(raw.Doc, &docFields); err != nil {
		return false, err
	}
	for k, want := range filter {
		if k == "id" {
			if s, ok := want.(string); !ok || s != raw.ID {
				return false, nil
			}
			continue
		}
		got, ok := docFields[k]
		if !ok {
			return false, nil
		}
		if !reflect.DeepEqual(got, normalize(want)) {
			return false, nil
		}
	}
	return true, nil
}

// normalize round-trips a value through JSON so filter and field values
// compare against the decoded document representation.
func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

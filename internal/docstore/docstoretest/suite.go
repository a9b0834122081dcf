// Package docstoretest provides a compliance suite run against every docstore
// backend.
package docstoretest

import (
	"context"
	"testing"

	"github.com/meshwork-social/meshwork/internal/docstore"
)

type note struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Pins  int    `json:"pins"`
}

// Run exercises the docstore contract against a backend. Implementations
// should provide a clean, isolated backend from makeBackend.
func Run(t *testing.T, makeBackend func(t *testing.T) docstore.Backend) {
	t.Helper()

	b := makeBackend(t)
	ctx := context.Background()
	col := docstore.NewCollection[note](b, "notes")

	// Create + read round trip
	created, err := col.CreateOne(ctx, note{Title: "first", Body: "hello"})
	if err != nil {
		t.Fatalf("CreateOne: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("CreateOne: empty id")
	}
	if created.UpdatedAt.Before(created.CreatedAt) {
		t.Fatalf("CreateOne: updatedAt %v before createdAt %v", created.UpdatedAt, created.CreatedAt)
	}
	got, err := col.ReadOne(ctx, docstore.Filter{"id": created.ID})
	if err != nil || got == nil {
		t.Fatalf("ReadOne by id: got=%v err=%v", got, err)
	}
	if got.Doc != created.Doc {
		t.Fatalf("ReadOne: doc mismatch: %+v vs %+v", got.Doc, created.Doc)
	}

	// Absence is a nil record, not an error
	if missing, err := col.ReadOne(ctx, docstore.Filter{"title": "no-such"}); err != nil || missing != nil {
		t.Fatalf("ReadOne absent: got=%v err=%v", missing, err)
	}

	// Field filters
	if byTitle, err := col.ReadOne(ctx, docstore.Filter{"title": "first"}); err != nil || byTitle == nil || byTitle.ID != created.ID {
		t.Fatalf("ReadOne by field: got=%v err=%v", byTitle, err)
	}

	// ReadMany returns all matches in insertion order
	second, err := col.CreateOne(ctx, note{Title: "second", Body: "hello"})
	if err != nil {
		t.Fatalf("CreateOne second: %v", err)
	}
	all, err := col.ReadMany(ctx, docstore.Filter{"body": "hello"})
	if err != nil || len(all) != 2 {
		t.Fatalf("ReadMany: n=%d err=%v", len(all), err)
	}
	if all[0].ID != created.ID || all[1].ID != second.ID {
		t.Fatalf("ReadMany: order %s,%s want %s,%s", all[0].ID, all[1].ID, created.ID, second.ID)
	}

	// Partial update merges fields and refreshes updatedAt
	updated, err := col.PartialUpdateOne(ctx, docstore.Filter{"id": created.ID}, docstore.Fields{"pins": 3})
	if err != nil {
		t.Fatalf("PartialUpdateOne: %v", err)
	}
	if updated.Doc.Pins != 3 || updated.Doc.Title != "first" {
		t.Fatalf("PartialUpdateOne: doc=%+v", updated.Doc)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("PartialUpdateOne: updatedAt not refreshed")
	}
	if _, err := col.PartialUpdateOne(ctx, docstore.Filter{"title": "no-such"}, docstore.Fields{"pins": 1}); err != docstore.ErrNotFound {
		t.Fatalf("PartialUpdateOne absent: err=%v want ErrNotFound", err)
	}

	// DeleteOne reports whether a record was removed
	removed, err := col.DeleteOne(ctx, docstore.Filter{"id": second.ID})
	if err != nil || !removed {
		t.Fatalf("DeleteOne: removed=%v err=%v", removed, err)
	}
	removed, err = col.DeleteOne(ctx, docstore.Filter{"id": second.ID})
	if err != nil || removed {
		t.Fatalf("DeleteOne repeat: removed=%v err=%v", removed, err)
	}
	if gone, err := col.ReadOne(ctx, docstore.Filter{"id": second.ID}); err != nil || gone != nil {
		t.Fatalf("ReadOne after delete: got=%v err=%v", gone, err)
	}

	// Collections are isolated
	other := docstore.NewCollection[note](b, "other_notes")
	if recs, err := other.ReadMany(ctx, docstore.Filter{}); err != nil || len(recs) != 0 {
		t.Fatalf("collection isolation: n=%d err=%v", len(recs), err)
	}

	if err := b.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

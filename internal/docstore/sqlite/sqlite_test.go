package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/meshwork-social/meshwork/internal/docstore"
	"github.com/meshwork-social/meshwork/internal/docstore/docstoretest"
)

func TestCompliance(t *testing.T) {
	docstoretest.Run(t, func(t *testing.T) docstore.Backend {
		db, err := Open(filepath.Join(t.TempDir(), "docstore.db"))
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		b := New(db)
		t.Cleanup(func() { _ = b.Close() })
		return b
	})
}

func TestInvalidCollectionName(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "docstore.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	b := New(db)
	defer func() { _ = b.Close() }()

	col := docstore.NewCollection[struct{}](b, "bad name; drop")
	if _, err := col.ReadMany(context.Background(), docstore.Filter{}); err == nil {
		t.Fatalf("expected error for invalid collection name")
	}
}

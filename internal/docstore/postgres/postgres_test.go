package postgres

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/meshwork-social/meshwork/internal/docstore"
	"github.com/meshwork-social/meshwork/internal/docstore/docstoretest"
)

// TestCompliance runs the docstore suite against a live PostgreSQL instance.
// Set MESHWORK_TEST_POSTGRES_DSN to enable; skipped otherwise so the default
// test run stays hermetic.
func TestCompliance(t *testing.T) {
	dsn := os.Getenv("MESHWORK_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MESHWORK_TEST_POSTGRES_DSN not set")
	}
	docstoretest.Run(t, func(t *testing.T) docstore.Backend {
		db, err := Open(dsn)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		// Isolate each run in its own schema.
		schema := fmt.Sprintf("docstore_test_%d", time.Now().UnixNano())
		if _, err := db.Exec("CREATE SCHEMA " + schema); err != nil {
			t.Fatalf("create schema: %v", err)
		}
		if _, err := db.Exec("SET search_path TO " + schema); err != nil {
			t.Fatalf("set search_path: %v", err)
		}
		b := New(db)
		t.Cleanup(func() {
			_, _ = db.Exec("DROP SCHEMA " + schema + " CASCADE")
			_ = b.Close()
		})
		return b
	})
}

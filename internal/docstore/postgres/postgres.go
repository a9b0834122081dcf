// Package postgres provides a docstore backend on PostgreSQL with JSONB
// documents, using the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/meshwork-social/meshwork/internal/docstore"
)

var collectionName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Open opens a PostgreSQL connection and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Backend stores each collection as one table of (id, doc JSONB, timestamps).
type Backend struct {
	db *sql.DB

	mu     sync.Mutex
	tables map[string]bool
}

// New wraps an open database connection.
func New(db *sql.DB) *Backend {
	return &Backend{db: db, tables: make(map[string]bool)}
}

func (b *Backend) ensureTable(ctx context.Context, collection string) error {
	if !collectionName.MatchString(collection) {
		return fmt.Errorf("postgres docstore: invalid collection name %q", collection)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tables[collection] {
		return nil
	}
	_, err := b.db.ExecContext(ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			doc JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`, collection))
	if err != nil {
		return err
	}
	b.tables[collection] = true
	return nil
}

func (b *Backend) Insert(ctx context.Context, collection string, rec docstore.RawRecord) error {
	if err := b.ensureTable(ctx, collection); err != nil {
		return err
	}
	_, err := b.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, doc, created_at, updated_at) VALUES ($1,$2,$3,$4)`, collection),
		rec.ID, string(rec.Doc), rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (b *Backend) List(ctx context.Context, collection string) ([]docstore.RawRecord, error) {
	if err := b.ensureTable(ctx, collection); err != nil {
		return nil, err
	}
	rows, err := b.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, doc, created_at, updated_at FROM %s ORDER BY created_at, id`, collection))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []docstore.RawRecord
	for rows.Next() {
		var rec docstore.RawRecord
		var doc string
		if err := rows.Scan(&rec.ID, &doc, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.Doc = []byte(doc)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (b *Backend) Update(ctx context.Context, collection, id string, doc []byte, updatedAt time.Time) error {
	if err := b.ensureTable(ctx, collection); err != nil {
		return err
	}
	res, err := b.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET doc = $1, updated_at = $2 WHERE id = $3`, collection),
		string(doc), updatedAt, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, collection, id string) (bool, error) {
	if err := b.ensureTable(ctx, collection); err != nil {
		return false, err
	}
	res, err := b.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, collection), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (b *Backend) Ping(ctx context.Context) error { return b.db.PingContext(ctx) }

func (b *Backend) Close() error { return b.db.Close() }

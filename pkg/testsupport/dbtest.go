// Package testsupport provides database helpers and content fixtures shared
// across integration tests.
package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	blogindexes "github.com/goliatone/go-blog/indexes"
	blogposts "github.com/goliatone/go-blog/posts"

	_ "github.com/mattn/go-sqlite3"
)

var dbSequence atomic.Int64

// NewSQLiteMemoryDB opens a private in-memory SQLite database. The pool is
// capped at one connection: SQLite in-memory databases live and die with
// their connection.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSequence.Add(1))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewBunDB opens an in-memory SQLite database wrapped in bun and creates a
// table for every supplied model. The handle is closed on test cleanup.
func NewBunDB(t *testing.T, models ...any) *bun.DB {
	t.Helper()

	sqldb, err := NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite memory db: %v", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table for %T: %v", model, err)
		}
	}
	return db
}

// NewContentDB opens an in-memory database with the blog content tables:
// posts, indexes, and index_entries.
func NewContentDB(t *testing.T) *bun.DB {
	t.Helper()
	return NewBunDB(t,
		(*blogposts.Post)(nil),
		(*blogindexes.Index)(nil),
		(*blogindexes.IndexEntry)(nil),
	)
}

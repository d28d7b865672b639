// Package dbtest opens throwaway sqlite databases with the production schema.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/chepyr/taskboard/internal/db"
	_ "github.com/mattn/go-sqlite3"
)

// Open returns an in-memory database closed at the end of the test. The pool
// is limited to one connection so every query sees the same in-memory file.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	dbx, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	dbx.SetMaxOpenConns(1)
	if err := db.Migrate(context.Background(), dbx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { dbx.Close() })
	return dbx
}

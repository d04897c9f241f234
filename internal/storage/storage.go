// Package storage wires the sqlite-backed bun database and applies the
// embedded schema migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Open connects to the sqlite database at dsn and wraps it with bun.
func Open(dsn string) (*bun.DB, error) {
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", dsn, err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	return db, nil
}

// OpenMemory returns an in-memory database for tests.
func OpenMemory() (*bun.DB, error) {
	db, err := Open("file::memory:?cache=shared")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Migrate executes every *.sql file in migrations in lexical order. Each
// file may contain multiple statements; files are expected to be written
// idempotently (CREATE TABLE IF NOT EXISTS and friends).
func Migrate(ctx context.Context, db *bun.DB, migrations fs.FS) error {
	entries, err := fs.Glob(migrations, "data/sql/migrations/*.sql")
	if err != nil {
		return fmt.Errorf("storage: glob migrations: %w", err)
	}
	sort.Strings(entries)

	for _, entry := range entries {
		script, err := fs.ReadFile(migrations, entry)
		if err != nil {
			return fmt.Errorf("storage: read migration %s: %w", entry, err)
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("storage: apply migration %s: %w", entry, err)
		}
	}
	return nil
}

// Package sqlite provides a SQLite-backed implementation of the core
// country and person stores.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/JonMunkholm/persons/internal/core"
)

// Ensure Store implements the core store interfaces.
var (
	_ core.CountryStore = (*Store)(nil)
	_ core.PersonStore  = (*Store)(nil)
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store implements core.CountryStore and core.PersonStore using SQLite.
type Store struct {
	db *sql.DB
}

// New opens the database at dbPath, creating parent directories, and runs
// migrations. Pass MemoryPath for a throwaway database.
func New(dbPath string) (*Store, error) {
	memory := dbPath == MemoryPath
	if !memory {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to :memory: is a separate database.
	if memory {
		db.SetMaxOpenConns(1)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// dsn applies per-connection pragmas so every pooled connection enforces
// foreign keys.
func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

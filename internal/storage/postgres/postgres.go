// Package postgres provides a PostgreSQL-backed implementation of the core
// country and person stores using pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/persons/internal/core"
)

// Ensure Store implements the core store interfaces.
var (
	_ core.CountryStore = (*Store)(nil)
	_ core.PersonStore  = (*Store)(nil)
)

// PoolConfig tunes the connection pool. Zero values keep pgx defaults.
type PoolConfig struct {
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Store implements core.CountryStore and core.PersonStore on a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pool for url, verifies it with a ping and runs migrations.
func Connect(ctx context.Context, url string, cfg PoolConfig) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store, err := New(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an existing pool and runs migrations.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases every pooled connection.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// schema is idempotent. seq preserves insertion order for listings.
const schema = `
CREATE TABLE IF NOT EXISTS countries (
    country_id UUID PRIMARY KEY,
    country_name VARCHAR(40) NOT NULL UNIQUE,
    seq BIGINT GENERATED ALWAYS AS IDENTITY
);

CREATE TABLE IF NOT EXISTS persons (
    person_id UUID PRIMARY KEY,
    person_name VARCHAR(40) NOT NULL,
    email VARCHAR(50) NOT NULL,
    date_of_birth DATE,
    gender VARCHAR(10),
    country_id UUID REFERENCES countries(country_id) ON DELETE SET NULL,
    address VARCHAR(200),
    receive_news_letters BOOLEAN NOT NULL DEFAULT FALSE,
    seq BIGINT GENERATED ALWAYS AS IDENTITY
);

CREATE INDEX IF NOT EXISTS idx_persons_country_id ON persons(country_id);
`

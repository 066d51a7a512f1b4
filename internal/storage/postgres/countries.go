package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/persons/internal/core"
)

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// InsertCountry adds a new country. A name clash wraps core.ErrDuplicate.
func (s *Store) InsertCountry(ctx context.Context, c core.Country) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO countries (country_id, country_name) VALUES ($1, $2)`,
		pgUUID(c.ID), c.Name,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("insert country %q: %w", c.Name, core.ErrDuplicate)
		}
		return fmt.Errorf("insert country: %w", err)
	}
	return nil
}

// ListCountries returns every country in insertion order.
func (s *Store) ListCountries(ctx context.Context) ([]core.Country, error) {
	rows, err := s.pool.Query(ctx, `SELECT country_id, country_name FROM countries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	countries := []core.Country{}
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, err
		}
		countries = append(countries, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", err)
	}
	return countries, nil
}

// GetCountryByID retrieves a country by its ID.
func (s *Store) GetCountryByID(ctx context.Context, id uuid.UUID) (*core.Country, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT country_id, country_name FROM countries WHERE country_id = $1`, pgUUID(id))
	return getCountry(row)
}

// GetCountryByName retrieves a country by its exact name.
func (s *Store) GetCountryByName(ctx context.Context, name string) (*core.Country, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT country_id, country_name FROM countries WHERE country_name = $1`, name)
	return getCountry(row)
}

func getCountry(row pgx.Row) (*core.Country, error) {
	c, err := scanCountry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func scanCountry(row pgx.Row) (*core.Country, error) {
	var (
		id   pgtype.UUID
		name string
	)
	if err := row.Scan(&id, &name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan country: %w", err)
	}
	return &core.Country{ID: uuid.UUID(id.Bytes), Name: name}, nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgUUIDPtr(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgUUID(*id)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/JonMunkholm/persons/internal/core"
)

// InsertCountry adds a new country. A name clash wraps core.ErrDuplicate.
func (s *Store) InsertCountry(ctx context.Context, c core.Country) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO countries (country_id, country_name) VALUES (?, ?)",
		c.ID.String(), c.Name,
	)
	if err != nil {
		var sqliteErr *msqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return fmt.Errorf("failed to insert country %q: %w", c.Name, core.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert country: %w", err)
	}
	return nil
}

// ListCountries returns every country in insertion order.
func (s *Store) ListCountries(ctx context.Context) ([]core.Country, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT country_id, country_name FROM countries ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
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
		return nil, fmt.Errorf("failed to iterate countries: %w", err)
	}
	return countries, nil
}

// GetCountryByID retrieves a country by its ID.
func (s *Store) GetCountryByID(ctx context.Context, id uuid.UUID) (*core.Country, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT country_id, country_name FROM countries WHERE country_id = ?",
		id.String(),
	)
	c, err := scanCountry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// GetCountryByName retrieves a country by its exact name.
func (s *Store) GetCountryByName(ctx context.Context, name string) (*core.Country, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT country_id, country_name FROM countries WHERE country_name = ?",
		name,
	)
	c, err := scanCountry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCountry(row scanner) (*core.Country, error) {
	var id, name string
	if err := row.Scan(&id, &name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan country: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid country id %q: %w", id, err)
	}
	return &core.Country{ID: parsed, Name: name}, nil
}

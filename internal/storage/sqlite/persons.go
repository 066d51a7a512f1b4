package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/persons/internal/core"
)

// dateLayout is how birth dates are stored in TEXT columns.
const dateLayout = "2006-01-02"

const selectPersons = `
	SELECT p.person_id, p.person_name, p.email, p.date_of_birth, p.gender,
	       p.country_id, p.address, p.receive_news_letters, c.country_name
	FROM persons p
	LEFT JOIN countries c ON c.country_id = p.country_id
`

// InsertPerson adds a new person.
func (s *Store) InsertPerson(ctx context.Context, p core.Person) error {
	query := `
		INSERT INTO persons (person_id, person_name, email, date_of_birth, gender,
		                     country_id, address, receive_news_letters)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, personArgs(p)...)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// ListPersons returns every person in insertion order with the country joined.
func (s *Store) ListPersons(ctx context.Context) ([]core.Person, error) {
	rows, err := s.db.QueryContext(ctx, selectPersons+" ORDER BY p.rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	persons := []core.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate persons: %w", err)
	}
	return persons, nil
}

// GetPersonByID retrieves a person by ID with the country joined.
func (s *Store) GetPersonByID(ctx context.Context, id uuid.UUID) (*core.Person, error) {
	row := s.db.QueryRowContext(ctx, selectPersons+" WHERE p.person_id = ?", id.String())
	p, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// UpdatePerson overwrites every mutable field. Returns core.ErrNotFound when
// no row matches p.ID.
func (s *Store) UpdatePerson(ctx context.Context, p core.Person) error {
	query := `
		UPDATE persons
		SET person_name = ?, email = ?, date_of_birth = ?, gender = ?,
		    country_id = ?, address = ?, receive_news_letters = ?
		WHERE person_id = ?
	`

	args := personArgs(p)
	args = append(args[1:], args[0])

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// DeletePerson removes a person and reports whether a row existed.
func (s *Store) DeletePerson(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM persons WHERE person_id = ?", id.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete person: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// personArgs returns the column values in insert order, ID first.
func personArgs(p core.Person) []any {
	var dob, gender, countryID, address sql.NullString
	if p.DateOfBirth != nil {
		dob = sql.NullString{String: p.DateOfBirth.Format(dateLayout), Valid: true}
	}
	if p.Gender != "" {
		gender = sql.NullString{String: string(p.Gender), Valid: true}
	}
	if p.CountryID != nil {
		countryID = sql.NullString{String: p.CountryID.String(), Valid: true}
	}
	if p.Address != "" {
		address = sql.NullString{String: p.Address, Valid: true}
	}

	return []any{
		p.ID.String(), p.Name, p.Email, dob, gender,
		countryID, address, p.ReceiveNewsLetters,
	}
}

func scanPerson(row scanner) (*core.Person, error) {
	var (
		id, name, email                              string
		dob, gender, countryID, address, countryName sql.NullString
		newsletters                                  bool
	)
	err := row.Scan(&id, &name, &email, &dob, &gender, &countryID, &address, &newsletters, &countryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan person: %w", err)
	}

	p := &core.Person{
		Name:               name,
		Email:              email,
		Gender:             core.Gender(gender.String),
		Address:            address.String,
		ReceiveNewsLetters: newsletters,
	}

	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid person id %q: %w", id, err)
	}
	if dob.Valid {
		t, err := time.Parse(dateLayout, dob.String)
		if err != nil {
			return nil, fmt.Errorf("invalid date of birth %q: %w", dob.String, err)
		}
		p.DateOfBirth = &t
	}
	if countryID.Valid {
		cid, err := uuid.Parse(countryID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid country id %q: %w", countryID.String, err)
		}
		p.CountryID = &cid
		if countryName.Valid {
			p.Country = &core.Country{ID: cid, Name: countryName.String}
		}
	}
	return p, nil
}

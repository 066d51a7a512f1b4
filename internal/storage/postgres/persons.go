package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/persons/internal/core"
)

const selectPersons = `
	SELECT p.person_id, p.person_name, p.email, p.date_of_birth, p.gender,
	       p.country_id, p.address, p.receive_news_letters, c.country_name
	FROM persons p
	LEFT JOIN countries c ON c.country_id = p.country_id
`

// InsertPerson adds a new person.
func (s *Store) InsertPerson(ctx context.Context, p core.Person) error {
	a := toArgs(p)
	_, err := s.pool.Exec(ctx, `
		INSERT INTO persons (person_id, person_name, email, date_of_birth, gender,
		                     country_id, address, receive_news_letters)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.id, p.Name, p.Email, a.dob, a.gender, a.countryID, a.address, p.ReceiveNewsLetters,
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

// ListPersons returns every person in insertion order with the country joined.
func (s *Store) ListPersons(ctx context.Context) ([]core.Person, error) {
	rows, err := s.pool.Query(ctx, selectPersons+` ORDER BY p.seq`)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
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
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return persons, nil
}

// GetPersonByID retrieves a person by ID with the country joined.
func (s *Store) GetPersonByID(ctx context.Context, id uuid.UUID) (*core.Person, error) {
	p, err := scanPerson(s.pool.QueryRow(ctx, selectPersons+` WHERE p.person_id = $1`, pgUUID(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// UpdatePerson overwrites every mutable field. Returns core.ErrNotFound when
// no row matches p.ID.
func (s *Store) UpdatePerson(ctx context.Context, p core.Person) error {
	a := toArgs(p)
	tag, err := s.pool.Exec(ctx, `
		UPDATE persons
		SET person_name = $2, email = $3, date_of_birth = $4, gender = $5,
		    country_id = $6, address = $7, receive_news_letters = $8
		WHERE person_id = $1`,
		a.id, p.Name, p.Email, a.dob, a.gender, a.countryID, a.address, p.ReceiveNewsLetters,
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// DeletePerson removes a person and reports whether a row existed.
func (s *Store) DeletePerson(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM persons WHERE person_id = $1`, pgUUID(id))
	if err != nil {
		return false, fmt.Errorf("delete person: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

type personArgs struct {
	id        pgtype.UUID
	dob       pgtype.Date
	gender    pgtype.Text
	countryID pgtype.UUID
	address   pgtype.Text
}

func toArgs(p core.Person) personArgs {
	a := personArgs{
		id:        pgUUID(p.ID),
		countryID: pgUUIDPtr(p.CountryID),
		gender:    pgtype.Text{String: string(p.Gender), Valid: p.Gender != ""},
		address:   pgtype.Text{String: p.Address, Valid: p.Address != ""},
	}
	if p.DateOfBirth != nil {
		a.dob = pgtype.Date{Time: *p.DateOfBirth, Valid: true}
	}
	return a
}

func scanPerson(row pgx.Row) (*core.Person, error) {
	var (
		p           core.Person
		id          pgtype.UUID
		dob         pgtype.Date
		gender      pgtype.Text
		countryID   pgtype.UUID
		address     pgtype.Text
		countryName pgtype.Text
	)
	err := row.Scan(&id, &p.Name, &p.Email, &dob, &gender, &countryID, &address,
		&p.ReceiveNewsLetters, &countryName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}

	p.ID = uuid.UUID(id.Bytes)
	p.Gender = core.Gender(gender.String)
	p.Address = address.String
	if dob.Valid {
		t := dob.Time
		p.DateOfBirth = &t
	}
	if countryID.Valid {
		cid := uuid.UUID(countryID.Bytes)
		p.CountryID = &cid
		if countryName.Valid {
			p.Country = &core.Country{ID: cid, Name: countryName.String}
		}
	}
	return &p, nil
}

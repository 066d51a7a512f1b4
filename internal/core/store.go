package core

import (
	"context"

	"github.com/google/uuid"
)

// CountryStore persists countries. Lookups return nil, nil when no record matches.
type CountryStore interface {
	InsertCountry(ctx context.Context, c Country) error
	ListCountries(ctx context.Context) ([]Country, error)
	GetCountryByID(ctx context.Context, id uuid.UUID) (*Country, error)
	GetCountryByName(ctx context.Context, name string) (*Country, error)
}

// PersonStore persists persons. Returned persons carry their joined Country
// when the reference resolves. Lookups return nil, nil when no record matches.
type PersonStore interface {
	InsertPerson(ctx context.Context, p Person) error
	ListPersons(ctx context.Context) ([]Person, error)
	GetPersonByID(ctx context.Context, id uuid.UUID) (*Person, error)

	// UpdatePerson overwrites every mutable field and returns ErrNotFound
	// when no row has p.ID.
	UpdatePerson(ctx context.Context, p Person) error

	// DeletePerson reports whether a row was removed.
	DeletePerson(ctx context.Context, id uuid.UUID) (bool, error)
}

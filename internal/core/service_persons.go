package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// PersonsService manages person records and the list queries over them.
type PersonsService struct {
	persons   PersonStore
	countries CountryStore
	opts      serviceOptions
}

// NewPersonsService creates a PersonsService. countries is used to check
// country references before they are stored.
func NewPersonsService(persons PersonStore, countries CountryStore, opts ...Option) *PersonsService {
	return &PersonsService{persons: persons, countries: countries, opts: applyOptions(opts)}
}

// AddPerson validates and stores a new person with a generated ID.
func (s *PersonsService) AddPerson(ctx context.Context, req *PersonAddRequest) (PersonResponse, error) {
	if req == nil {
		return PersonResponse{}, fmt.Errorf("add person: %w", ErrNullRequest)
	}
	if err := validateFirst(req); err != nil {
		return PersonResponse{}, err
	}

	country, err := s.resolveCountry(ctx, req.CountryID)
	if err != nil {
		return PersonResponse{}, err
	}

	p := req.ToPerson()
	p.ID = uuid.New()
	if err := s.persons.InsertPerson(ctx, p); err != nil {
		return PersonResponse{}, fmt.Errorf("insert person: %w", err)
	}
	p.Country = country

	s.opts.metrics.IncPersonCreated()
	logChange(ctx, "person created", "person_id", p.ID)
	return p.ToPersonResponse(s.opts.clock()), nil
}

// GetAllPersons returns every person in insertion order.
func (s *PersonsService) GetAllPersons(ctx context.Context) ([]PersonResponse, error) {
	persons, err := s.persons.ListPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}

	now := s.opts.clock()
	out := make([]PersonResponse, len(persons))
	for i, p := range persons {
		out[i] = p.ToPersonResponse(now)
	}
	return out, nil
}

// GetPersonByPersonID returns nil when id is nil or unmatched.
func (s *PersonsService) GetPersonByPersonID(ctx context.Context, id *uuid.UUID) (*PersonResponse, error) {
	if id == nil {
		return nil, nil
	}

	p, err := s.persons.GetPersonByID(ctx, *id)
	if err != nil {
		return nil, fmt.Errorf("get person %s: %w", id, err)
	}
	if p == nil {
		return nil, nil
	}

	resp := p.ToPersonResponse(s.opts.clock())
	return &resp, nil
}

// GetFilteredPersons lists all persons and keeps those matching the search.
// See FilterPersons.
func (s *PersonsService) GetFilteredPersons(ctx context.Context, searchBy, searchString string) ([]PersonResponse, error) {
	all, err := s.GetAllPersons(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPersons(all, searchBy, searchString), nil
}

// GetSortedPersons orders persons by sortBy. See SortPersons.
func (s *PersonsService) GetSortedPersons(persons []PersonResponse, sortBy string, order SortOrder) []PersonResponse {
	return SortPersons(persons, sortBy, order)
}

// UpdatePerson overwrites every mutable field of an existing person.
// Returns an error wrapping ErrNotFound when the person does not exist.
func (s *PersonsService) UpdatePerson(ctx context.Context, req *PersonUpdateRequest) (PersonResponse, error) {
	if req == nil {
		return PersonResponse{}, fmt.Errorf("update person: %w", ErrNullRequest)
	}
	if err := validateFirst(req); err != nil {
		return PersonResponse{}, err
	}

	country, err := s.resolveCountry(ctx, req.CountryID)
	if err != nil {
		return PersonResponse{}, err
	}

	p := req.ToPerson()
	if err := s.persons.UpdatePerson(ctx, p); err != nil {
		return PersonResponse{}, fmt.Errorf("update person %s: %w", p.ID, err)
	}
	p.Country = country

	s.opts.metrics.IncPersonUpdated()
	logChange(ctx, "person updated", "person_id", p.ID)
	return p.ToPersonResponse(s.opts.clock()), nil
}

// DeletePerson removes a person. Returns false when the person does not exist.
func (s *PersonsService) DeletePerson(ctx context.Context, id *uuid.UUID) (bool, error) {
	if id == nil {
		return false, fmt.Errorf("delete person: %w", ErrNullRequest)
	}

	deleted, err := s.persons.DeletePerson(ctx, *id)
	if err != nil {
		return false, fmt.Errorf("delete person %s: %w", id, err)
	}
	if deleted {
		s.opts.metrics.IncPersonDeleted()
		logChange(ctx, "person deleted", "person_id", *id)
	}
	return deleted, nil
}

// resolveCountry loads the referenced country. A nil id resolves to nil;
// an id with no matching country is a validation failure.
func (s *PersonsService) resolveCountry(ctx context.Context, id *uuid.UUID) (*Country, error) {
	if id == nil {
		return nil, nil
	}

	c, err := s.countries.GetCountryByID(ctx, *id)
	if err != nil {
		return nil, fmt.Errorf("get country %s: %w", id, err)
	}
	if c == nil {
		return nil, &ValidationError{
			Field:   "CountryID",
			Value:   id.String(),
			Message: "Selected country does not exist",
		}
	}
	return c, nil
}

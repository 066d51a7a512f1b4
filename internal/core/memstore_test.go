package core

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// memStore is an in-memory CountryStore and PersonStore used by the tests
// in this package.
type memStore struct {
	mu        sync.Mutex
	countries []Country
	persons   []Person

	// failCountryInsertAt makes the n-th InsertCountry call fail (1-based).
	failCountryInsertAt int
	countryInserts      int
}

var (
	_ CountryStore = (*memStore)(nil)
	_ PersonStore  = (*memStore)(nil)
)

var errInjected = errors.New("injected store failure")

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) InsertCountry(_ context.Context, c Country) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.countryInserts++
	if m.failCountryInsertAt > 0 && m.countryInserts == m.failCountryInsertAt {
		return errInjected
	}
	m.countries = append(m.countries, c)
	return nil
}

func (m *memStore) ListCountries(_ context.Context) ([]Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Country, len(m.countries))
	copy(out, m.countries)
	return out, nil
}

func (m *memStore) GetCountryByID(_ context.Context, id uuid.UUID) (*Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countryByID(id), nil
}

func (m *memStore) GetCountryByName(_ context.Context, name string) (*Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.countries {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memStore) countryByID(id uuid.UUID) *Country {
	for _, c := range m.countries {
		if c.ID == id {
			c := c
			return &c
		}
	}
	return nil
}

func (m *memStore) InsertPerson(_ context.Context, p Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.Country = nil
	m.persons = append(m.persons, p)
	return nil
}

func (m *memStore) ListPersons(_ context.Context) ([]Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Person, len(m.persons))
	for i, p := range m.persons {
		out[i] = m.joined(p)
	}
	return out, nil
}

func (m *memStore) GetPersonByID(_ context.Context, id uuid.UUID) (*Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.persons {
		if p.ID == id {
			j := m.joined(p)
			return &j, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdatePerson(_ context.Context, p Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.persons {
		if m.persons[i].ID == p.ID {
			p.Country = nil
			m.persons[i] = p
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) DeletePerson(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.persons {
		if p.ID == id {
			m.persons = append(m.persons[:i], m.persons[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) joined(p Person) Person {
	if p.CountryID != nil {
		p.Country = m.countryByID(*p.CountryID)
	}
	return p
}

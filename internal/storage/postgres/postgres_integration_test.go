//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/JonMunkholm/persons/internal/core"
	"github.com/JonMunkholm/persons/internal/storage/postgres"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	store     *postgres.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("persons"),
		tcpostgres.WithUsername("persons"),
		tcpostgres.WithPassword("persons"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.store, err = postgres.Connect(ctx, url, postgres.PoolConfig{MaxConns: 4})
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *PostgresStoreSuite) TestMigrationsAreIdempotent() {
	url, err := s.container.ConnectionString(context.Background(), "sslmode=disable")
	s.Require().NoError(err)

	again, err := postgres.Connect(context.Background(), url, postgres.PoolConfig{})
	s.Require().NoError(err)
	s.NoError(again.Ping(context.Background()))
	_ = again.Close()
}

func (s *PostgresStoreSuite) TestCountryNameIsUnique() {
	ctx := context.Background()
	name := "Country " + uuid.NewString()[:8]

	s.Require().NoError(s.store.InsertCountry(ctx, core.Country{ID: uuid.New(), Name: name}))
	err := s.store.InsertCountry(ctx, core.Country{ID: uuid.New(), Name: name})
	s.ErrorIs(err, core.ErrDuplicate)

	got, err := s.store.GetCountryByName(ctx, name)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(name, got.Name)
}

func (s *PostgresStoreSuite) TestPersonLifecycle() {
	ctx := context.Background()

	country := core.Country{ID: uuid.New(), Name: "Land " + uuid.NewString()[:8]}
	s.Require().NoError(s.store.InsertCountry(ctx, country))

	dob := time.Date(1988, time.February, 29, 0, 0, 0, 0, time.UTC)
	p := core.Person{
		ID:                 uuid.New(),
		Name:               "Ingrid",
		Email:              "ingrid@example.com",
		DateOfBirth:        &dob,
		Gender:             core.GenderFemale,
		CountryID:          &country.ID,
		Address:            "Storgata 1",
		ReceiveNewsLetters: true,
	}
	s.Require().NoError(s.store.InsertPerson(ctx, p))

	got, err := s.store.GetPersonByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(p.Name, got.Name)
	s.True(dob.Equal(*got.DateOfBirth))
	s.Require().NotNil(got.Country)
	s.Equal(country.Name, got.Country.Name)

	p.Name = "Ingrid Olsen"
	p.CountryID = nil
	s.Require().NoError(s.store.UpdatePerson(ctx, p))

	got, err = s.store.GetPersonByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Ingrid Olsen", got.Name)
	s.Nil(got.CountryID)
	s.Nil(got.Country)

	s.ErrorIs(s.store.UpdatePerson(ctx, core.Person{ID: uuid.New(), Name: "N", Email: "n@example.com"}), core.ErrNotFound)

	deleted, err := s.store.DeletePerson(ctx, p.ID)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.store.DeletePerson(ctx, p.ID)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *PostgresStoreSuite) TestListKeepsInsertionOrder() {
	ctx := context.Background()

	before, err := s.store.ListPersons(ctx)
	s.Require().NoError(err)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i, id := range ids {
		s.Require().NoError(s.store.InsertPerson(ctx, core.Person{
			ID:    id,
			Name:  "Order " + string(rune('A'+i)),
			Email: "order@example.com",
		}))
	}

	after, err := s.store.ListPersons(ctx)
	s.Require().NoError(err)
	s.Require().Len(after, len(before)+3)
	for i, id := range ids {
		s.Equal(id, after[len(before)+i].ID)
	}
}

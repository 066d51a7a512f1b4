package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// CountriesService manages country records.
type CountriesService struct {
	store CountryStore
	opts  serviceOptions
}

// NewCountriesService creates a CountriesService over store.
func NewCountriesService(store CountryStore, opts ...Option) *CountriesService {
	return &CountriesService{store: store, opts: applyOptions(opts)}
}

// AddCountry validates and stores a new country with a generated ID.
func (s *CountriesService) AddCountry(ctx context.Context, req *CountryAddRequest) (CountryResponse, error) {
	if req == nil {
		return CountryResponse{}, fmt.Errorf("add country: %w", ErrNullRequest)
	}
	if err := validateFirst(req); err != nil {
		return CountryResponse{}, err
	}

	existing, err := s.store.GetCountryByName(ctx, req.CountryName)
	if err != nil {
		return CountryResponse{}, fmt.Errorf("lookup country %q: %w", req.CountryName, err)
	}
	if existing != nil {
		return CountryResponse{}, fmt.Errorf("country %q: %w", req.CountryName, ErrDuplicate)
	}

	c := req.ToCountry()
	c.ID = uuid.New()
	if err := s.store.InsertCountry(ctx, c); err != nil {
		return CountryResponse{}, fmt.Errorf("insert country %q: %w", c.Name, err)
	}

	s.opts.metrics.IncCountryCreated()
	logChange(ctx, "country created", "country_id", c.ID, "country_name", c.Name)
	return c.ToCountryResponse(), nil
}

// GetAllCountries returns every country in insertion order.
func (s *CountriesService) GetAllCountries(ctx context.Context) ([]CountryResponse, error) {
	countries, err := s.store.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}

	out := make([]CountryResponse, len(countries))
	for i, c := range countries {
		out[i] = c.ToCountryResponse()
	}
	return out, nil
}

// GetCountryByCountryID returns nil when id is nil or unmatched.
func (s *CountriesService) GetCountryByCountryID(ctx context.Context, id *uuid.UUID) (*CountryResponse, error) {
	if id == nil {
		return nil, nil
	}

	c, err := s.store.GetCountryByID(ctx, *id)
	if err != nil {
		return nil, fmt.Errorf("get country %s: %w", id, err)
	}
	if c == nil {
		return nil, nil
	}

	resp := c.ToCountryResponse()
	return &resp, nil
}

// UploadCountriesFromExcel inserts the country names found in column A of
// the configured worksheet, starting at row 2. Blank names and names that
// already exist are skipped.
//
// Rows are inserted one at a time. When a row fails, the rows before it stay
// committed and the number inserted so far is returned with the error.
func (s *CountriesService) UploadCountriesFromExcel(ctx context.Context, r io.Reader) (int, error) {
	if err := s.opts.imports.Acquire(ctx); err != nil {
		return 0, fmt.Errorf("import countries: %w", err)
	}
	defer s.opts.imports.Release()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedFile, err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.opts.countriesSheet)
	if err != nil {
		var missing excelize.ErrSheetNotExist
		if errors.As(err, &missing) {
			return 0, fmt.Errorf("%w: %s", ErrSheetNotFound, s.opts.countriesSheet)
		}
		return 0, fmt.Errorf("read sheet %s: %w", s.opts.countriesSheet, err)
	}

	inserted := 0
	defer func() { s.opts.metrics.AddCountriesImported(inserted) }()

	seen := make(map[string]struct{})
	for i := 1; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}
		if len(rows[i]) == 0 {
			continue
		}

		name := strings.TrimSpace(rows[i][0])
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		req := CountryAddRequest{CountryName: name}
		if err := validateFirst(&req); err != nil {
			return inserted, fmt.Errorf("row %d: %w", i+1, err)
		}

		existing, err := s.store.GetCountryByName(ctx, name)
		if err != nil {
			return inserted, fmt.Errorf("row %d: lookup country %q: %w", i+1, name, err)
		}
		if existing != nil {
			continue
		}

		c := req.ToCountry()
		c.ID = uuid.New()
		if err := s.store.InsertCountry(ctx, c); err != nil {
			return inserted, fmt.Errorf("row %d: insert country %q: %w", i+1, name, err)
		}
		inserted++
	}

	logChange(ctx, "countries imported", "sheet", s.opts.countriesSheet, "inserted", inserted)
	return inserted, nil
}

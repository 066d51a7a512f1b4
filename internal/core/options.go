package core

import (
	"time"

	"github.com/JonMunkholm/persons/internal/metrics"
)

// DefaultCountriesSheet is the worksheet read by country uploads.
const DefaultCountriesSheet = "Countries"

type serviceOptions struct {
	metrics        *metrics.Metrics
	clock          Clock
	countriesSheet string
	imports        *ImportLimiter
}

// Option configures a service.
type Option func(o *serviceOptions)

// WithMetrics records mutations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *serviceOptions) {
		o.metrics = m
	}
}

// WithClock replaces time.Now when computing ages.
func WithClock(c Clock) Option {
	return func(o *serviceOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithCountriesSheet sets the worksheet read by UploadCountriesFromExcel.
func WithCountriesSheet(name string) Option {
	return func(o *serviceOptions) {
		if name != "" {
			o.countriesSheet = name
		}
	}
}

// WithImportLimiter bounds concurrent UploadCountriesFromExcel calls.
func WithImportLimiter(l *ImportLimiter) Option {
	return func(o *serviceOptions) {
		o.imports = l
	}
}

func applyOptions(opts []Option) serviceOptions {
	o := serviceOptions{
		clock:          time.Now,
		countriesSheet: DefaultCountriesSheet,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

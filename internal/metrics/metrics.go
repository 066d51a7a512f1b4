// Package metrics exposes Prometheus counters and histograms for the
// persons directory.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks record mutations, country imports and exports.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	PersonsCreated    prometheus.Counter
	PersonsUpdated    prometheus.Counter
	PersonsDeleted    prometheus.Counter
	CountriesCreated  prometheus.Counter
	CountriesImported prometheus.Counter
	Exports           *prometheus.CounterVec
	ExportDuration    *prometheus.HistogramVec
}

// New registers all metrics with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PersonsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "persons_created_total",
			Help: "Total number of persons created",
		}),
		PersonsUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "persons_updated_total",
			Help: "Total number of persons updated",
		}),
		PersonsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "persons_deleted_total",
			Help: "Total number of persons deleted",
		}),
		CountriesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "countries_created_total",
			Help: "Total number of countries added one at a time",
		}),
		CountriesImported: f.NewCounter(prometheus.CounterOpts{
			Name: "countries_imported_total",
			Help: "Total number of countries inserted from spreadsheet uploads",
		}),
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "persons_exports_total",
			Help: "Total number of person list exports by format",
		}, []string{"format"}),
		ExportDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "persons_export_duration_seconds",
			Help:    "Duration of person list exports by format",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"format"}),
	}
}

// IncPersonCreated records a successful person creation.
func (m *Metrics) IncPersonCreated() {
	if m == nil {
		return
	}
	m.PersonsCreated.Inc()
}

// IncPersonUpdated records a successful person update.
func (m *Metrics) IncPersonUpdated() {
	if m == nil {
		return
	}
	m.PersonsUpdated.Inc()
}

// IncPersonDeleted records a successful person deletion.
func (m *Metrics) IncPersonDeleted() {
	if m == nil {
		return
	}
	m.PersonsDeleted.Inc()
}

// IncCountryCreated records a successful country creation.
func (m *Metrics) IncCountryCreated() {
	if m == nil {
		return
	}
	m.CountriesCreated.Inc()
}

// AddCountriesImported records n countries inserted by one upload.
func (m *Metrics) AddCountriesImported(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.CountriesImported.Add(float64(n))
}

// ObserveExport records one export of the given format.
// Call with time.Now() at the start of the export.
func (m *Metrics) ObserveExport(format string, start time.Time) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(format).Inc()
	m.ExportDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncPersonCreated()
	m.IncPersonCreated()
	m.IncPersonUpdated()
	m.IncPersonDeleted()
	m.IncCountryCreated()
	m.AddCountriesImported(3)
	m.AddCountriesImported(0)
	m.ObserveExport("csv", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PersonsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersonsUpdated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersonsDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CountriesCreated))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CountriesImported))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Exports.WithLabelValues("csv")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Exports.WithLabelValues("pdf")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncPersonCreated()
		m.IncPersonUpdated()
		m.IncPersonDeleted()
		m.IncCountryCreated()
		m.AddCountriesImported(5)
		m.ObserveExport("xlsx", time.Now())
	})
}

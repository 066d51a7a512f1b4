// Package export renders the person list as downloadable files.
//
// Every format returns a *bytes.Reader positioned at offset 0 so handlers
// can stream it straight into the response.
package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/persons/internal/core"
	"github.com/JonMunkholm/persons/internal/metrics"
)

// Format names used in metrics and logs.
const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)

// PersonLister supplies the persons to export.
type PersonLister interface {
	GetAllPersons(ctx context.Context) ([]core.PersonResponse, error)
}

// Exporter renders the full person list in each supported format.
type Exporter struct {
	persons PersonLister
	columns ExcelColumns
	pdf     PDFOptions
	metrics *metrics.Metrics
}

// Option configures an Exporter.
type Option func(e *Exporter)

// WithExcelColumns selects the spreadsheet column set.
func WithExcelColumns(c ExcelColumns) Option {
	return func(e *Exporter) {
		e.columns = c
	}
}

// WithPDFOptions overrides the page layout of PDF exports.
func WithPDFOptions(o PDFOptions) Option {
	return func(e *Exporter) {
		e.pdf = o
	}
}

// WithMetrics records every export on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Exporter) {
		e.metrics = m
	}
}

// New creates an Exporter over persons.
func New(persons PersonLister, opts ...Option) *Exporter {
	e := &Exporter{
		persons: persons,
		columns: FullColumns,
		pdf:     DefaultPDFOptions,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CSV renders every person as comma-separated text.
func (e *Exporter) CSV(ctx context.Context) (*bytes.Reader, error) {
	return e.render(ctx, FormatCSV, func(buf *bytes.Buffer, persons []core.PersonResponse) error {
		return WriteCSV(buf, persons)
	})
}

// Excel renders every person into an xlsx workbook.
func (e *Exporter) Excel(ctx context.Context) (*bytes.Reader, error) {
	return e.render(ctx, FormatExcel, func(buf *bytes.Buffer, persons []core.PersonResponse) error {
		return WriteExcel(buf, persons, e.columns)
	})
}

// PDF renders every person into a landscape table document.
func (e *Exporter) PDF(ctx context.Context) (*bytes.Reader, error) {
	return e.render(ctx, FormatPDF, func(buf *bytes.Buffer, persons []core.PersonResponse) error {
		return WritePDF(buf, persons, e.pdf)
	})
}

func (e *Exporter) render(ctx context.Context, format string, write func(*bytes.Buffer, []core.PersonResponse) error) (*bytes.Reader, error) {
	start := time.Now()

	persons, err := e.persons.GetAllPersons(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := write(&buf, persons); err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}

	e.metrics.ObserveExport(format, start)
	return bytes.NewReader(buf.Bytes()), nil
}

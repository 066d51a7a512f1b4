package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/persons/internal/core"
)

// ExcelSheet is the name of the worksheet holding exported persons.
const ExcelSheet = "PersonsSheet"

// ExcelColumn is one spreadsheet column: its header and how to read its
// value from a person.
type ExcelColumn struct {
	Header string
	Value  func(p core.PersonResponse) string
}

// ExcelColumns is the ordered column set of a spreadsheet export.
type ExcelColumns []ExcelColumn

var (
	nameColumn    = ExcelColumn{"Person Name", func(p core.PersonResponse) string { return p.PersonName }}
	emailColumn   = ExcelColumn{"Person Email", func(p core.PersonResponse) string { return p.Email }}
	dobColumn     = ExcelColumn{"Date of Birth", formatDate}
	countryColumn = ExcelColumn{"Country", func(p core.PersonResponse) string { return p.Country }}
)

var (
	// FullColumns exports name, email, birth date and country.
	FullColumns = ExcelColumns{nameColumn, emailColumn, dobColumn, countryColumn}

	// CompactColumns drops the country column.
	CompactColumns = ExcelColumns{nameColumn, emailColumn, dobColumn}
)

// ParseExcelColumns resolves a configured column set name ("full" or "compact").
func ParseExcelColumns(name string) (ExcelColumns, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "full":
		return FullColumns, nil
	case "compact":
		return CompactColumns, nil
	default:
		return nil, fmt.Errorf("unknown excel column set %q", name)
	}
}

// Column widths are measured in characters.
const (
	minColWidth = 10
	maxColWidth = 60
)

// WriteExcel writes a single-sheet workbook with a styled header row and one
// row per person, then fits the column widths to their content.
func WriteExcel(w io.Writer, persons []core.PersonResponse, cols ExcelColumns) error {
	if len(cols) == 0 {
		return fmt.Errorf("no excel columns configured")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExcelSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	widths := make([]int, len(cols))
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.Header
		widths[i] = utf8.RuneCountInString(c.Header)
	}
	if err := f.SetSheetRow(ExcelSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r, p := range persons {
		row := make([]any, len(cols))
		for i, c := range cols {
			v := c.Value(p)
			row[i] = v
			widths[i] = max(widths[i], utf8.RuneCountInString(v))
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ExcelSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}

	if err := styleHeader(f, len(cols)); err != nil {
		return err
	}
	if err := fitColumns(f, widths); err != nil {
		return err
	}

	return f.Write(w)
}

// styleHeader makes the header row bold on a light gray fill.
func styleHeader(f *excelize.File, ncols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(ncols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(ExcelSheet, "A1", last, style)
}

func fitColumns(f *excelize.File, widths []int) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(min(max(w+2, minColWidth), maxColWidth))
		if err := f.SetColWidth(ExcelSheet, col, col, width); err != nil {
			return fmt.Errorf("set width of column %s: %w", col, err)
		}
	}
	return nil
}

package export

import (
	"encoding/csv"
	"io"

	"github.com/JonMunkholm/persons/internal/core"
)

// csvHeader is the fixed header row of CSV exports.
var csvHeader = []string{"PersonName", "Email", "DateOfBirth", "Country"}

// dateLayout formats birth dates in file exports.
const dateLayout = "2006-01-02"

// WriteCSV writes a header and one row per person.
func WriteCSV(w io.Writer, persons []core.PersonResponse) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, p := range persons {
		record := []string{p.PersonName, p.Email, formatDate(p), p.Country}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatDate(p core.PersonResponse) string {
	if p.DateOfBirth == nil {
		return ""
	}
	return p.DateOfBirth.Format(dateLayout)
}

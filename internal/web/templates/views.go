// Package templates holds the server-rendered views of the persons web app.
//
// Views are templ components; the *_templ.go files are generated from the
// .templ sources with `templ generate` and committed. Handlers render every
// view the same way:
//
//	templates.PersonsIndex(page).Render(ctx, w)
package templates

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/persons/internal/core"
)

// Option is one entry of a drop-down.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Column is a sortable list header.
type Column struct {
	Label string
	URL   string
	Arrow string
}

// ListPage is the data of the persons list.
type ListPage struct {
	Persons      []core.PersonResponse
	SearchFields []Option
	SearchString string
	Columns      []Column
}

// listColumns are the list-view columns in display order.
var listColumns = []core.Field{
	core.FieldPersonName,
	core.FieldEmail,
	core.FieldDateOfBirth,
	core.FieldAge,
	core.FieldGender,
	core.FieldCountry,
	core.FieldAddress,
	core.FieldReceiveNewsLetters,
}

// NewListPage builds the list page for the given search and sort state.
// Clicking the active column flips its order; any other column sorts ascending.
func NewListPage(persons []core.PersonResponse, searchBy, searchString, sortBy string, order core.SortOrder) ListPage {
	p := ListPage{Persons: persons, SearchString: searchString}

	for _, f := range core.SearchFields() {
		p.SearchFields = append(p.SearchFields, Option{
			Value:    string(f),
			Label:    f.Label(),
			Selected: string(f) == searchBy,
		})
	}

	for _, f := range listColumns {
		next, arrow := core.SortAsc, ""
		if string(f) == sortBy {
			if order == core.SortAsc {
				next, arrow = core.SortDesc, "▲"
			} else {
				arrow = "▼"
			}
		}
		q := url.Values{}
		q.Set("searchBy", searchBy)
		q.Set("searchString", searchString)
		q.Set("sortBy", string(f))
		q.Set("sortOrder", string(next))
		p.Columns = append(p.Columns, Column{
			Label: f.Label(),
			URL:   "/persons/index?" + q.Encode(),
			Arrow: arrow,
		})
	}
	return p
}

// PersonForm is the data of the create and edit forms.
type PersonForm struct {
	Title     string
	Action    string
	Person    core.PersonUpdateRequest
	Genders   []core.Gender
	Countries []core.CountryResponse
	Errors    []string
}

// DeletePage is the data of the delete confirmation.
type DeletePage struct {
	Person core.PersonResponse
}

// UploadPage is the data of the country upload form.
type UploadPage struct {
	Message      string
	ErrorMessage string
}

// ErrorPage is the data of the generic error page.
type ErrorPage struct {
	Status  int
	Message string
	Action  string
	Code    string
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02 Jan 2006")
}

// isoDate formats t for a date input.
func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatAge(a *float64) string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%.0f", *a)
}

// personID leaves the hidden ID field empty for a person not yet stored.
func personID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func sameCountry(selected *uuid.UUID, id uuid.UUID) bool {
	return selected != nil && *selected == id
}

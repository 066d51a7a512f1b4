package templates

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/persons/internal/core"
)

func TestNewListPage_SortLinks(t *testing.T) {
	p := NewListPage(nil, "Email", "gmail", "PersonName", core.SortAsc)

	require.Len(t, p.Columns, 8)
	byLabel := make(map[string]Column)
	for _, c := range p.Columns {
		byLabel[c.Label] = c
	}

	name := byLabel["Person Name"]
	assert.Equal(t, "▲", name.Arrow)
	u, err := url.Parse(name.URL)
	require.NoError(t, err)
	assert.Equal(t, "/persons/index", u.Path)
	assert.Equal(t, "DESC", u.Query().Get("sortOrder"))
	assert.Equal(t, "Email", u.Query().Get("searchBy"))
	assert.Equal(t, "gmail", u.Query().Get("searchString"))

	age := byLabel["Age"]
	assert.Empty(t, age.Arrow)
	u, err = url.Parse(age.URL)
	require.NoError(t, err)
	assert.Equal(t, "Age", u.Query().Get("sortBy"))
	assert.Equal(t, "ASC", u.Query().Get("sortOrder"))
}

func TestNewListPage_DescendingFlipsBack(t *testing.T) {
	p := NewListPage(nil, "PersonName", "", "Age", core.SortDesc)
	for _, c := range p.Columns {
		if c.Label != "Age" {
			continue
		}
		assert.Equal(t, "▼", c.Arrow)
		assert.Contains(t, c.URL, "sortOrder=ASC")
	}
}

func TestNewListPage_SearchFields(t *testing.T) {
	p := NewListPage(nil, "Country", "", "PersonName", core.SortAsc)

	var values []string
	for _, o := range p.SearchFields {
		values = append(values, o.Value)
		assert.Equal(t, o.Value == "Country", o.Selected, o.Value)
	}
	assert.Equal(t, []string{"PersonName", "Email", "DateOfBirth", "Gender", "Country", "Address"}, values)
}

func TestPersonsIndex_Render(t *testing.T) {
	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	age := 25.0
	persons := []core.PersonResponse{{
		PersonID:    uuid.New(),
		PersonName:  "<Mona>",
		Email:       "mona@example.com",
		DateOfBirth: &dob,
		Age:         &age,
		Country:     "USA",
	}}

	var buf bytes.Buffer
	page := NewListPage(persons, "PersonName", "", "PersonName", core.SortAsc)
	require.NoError(t, PersonsIndex(page).Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, "&lt;Mona&gt;")
	assert.Contains(t, html, "01 Jan 2000")
	assert.Contains(t, html, "<td>25</td>")
	assert.Contains(t, html, "/persons/edit/"+persons[0].PersonID.String())
}

func TestPersonsIndex_Empty(t *testing.T) {
	var buf bytes.Buffer
	page := NewListPage(nil, "PersonName", "", "PersonName", core.SortAsc)
	require.NoError(t, PersonsIndex(page).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No persons found")
}

func TestPersonForm_Render(t *testing.T) {
	usa := core.CountryResponse{CountryID: uuid.New(), CountryName: "USA"}
	uk := core.CountryResponse{CountryID: uuid.New(), CountryName: "UK"}

	form := PersonForm{
		Title:  "Edit Person",
		Action: "/persons/edit/x",
		Person: core.PersonUpdateRequest{
			PersonID:   uuid.New(),
			PersonName: "Mona",
			Gender:     core.GenderFemale,
			CountryID:  &uk.CountryID,
		},
		Genders:   core.Genders,
		Countries: []core.CountryResponse{usa, uk},
		Errors:    []string{"Invalid Email"},
	}

	var buf bytes.Buffer
	require.NoError(t, PersonEdit(form).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `value="Female" checked`)
	assert.NotContains(t, html, `value="Male" checked`)
	assert.Contains(t, html, `value="`+uk.CountryID.String()+`" selected`)
	assert.NotContains(t, html, `value="`+usa.CountryID.String()+`" selected`)
	assert.Contains(t, html, "<li>Invalid Email</li>")
}

func TestCreateForm_HidesZeroID(t *testing.T) {
	var buf bytes.Buffer
	form := PersonForm{Title: "Create Person", Action: "/persons/create", Genders: core.Genders}
	require.NoError(t, PersonCreate(form).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `name="PersonID" value=""`)
	assert.False(t, strings.Contains(buf.String(), "00000000-0000"))
}

func TestError_Render(t *testing.T) {
	var buf bytes.Buffer
	page := ErrorPage{Status: 500, Message: "Database error", Action: "Try again", Code: "DB003"}
	require.NoError(t, Error(page).Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, "500 Internal Server Error")
	assert.Contains(t, html, "Database error (Code: DB003)")
	assert.Contains(t, html, "<p>Try again</p>")

	buf.Reset()
	require.NoError(t, Error(ErrorPage{Status: 413, Message: "Too big"}).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "Code:")
}

func TestCountriesUpload_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CountriesUpload(UploadPage{ErrorMessage: "bad <file>"}).Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, `<title>Upload Countries</title>`)
	assert.Contains(t, html, `<p class="error">bad &lt;file&gt;</p>`)
	assert.NotContains(t, html, `class="message"`)
}

func TestPersonDelete_Render(t *testing.T) {
	dob := time.Date(1995, 7, 2, 0, 0, 0, 0, time.UTC)
	person := core.PersonResponse{PersonID: uuid.New(), PersonName: "Omar", DateOfBirth: &dob}

	var buf bytes.Buffer
	require.NoError(t, PersonDelete(DeletePage{Person: person}).Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, `action="/persons/delete/`+person.PersonID.String()+`"`)
	assert.Contains(t, html, "<dd>02 Jul 1995</dd>")
}

package web

// handlers_common.go holds request binding and response helpers shared by
// the handlers.

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/persons/internal/core"
)

// formDateLayout is the value format of an <input type="date">.
const formDateLayout = "2006-01-02"

const indexPath = "/persons/index"

// bindPersonForm reads the person form fields from the request body.
// Values that cannot be parsed are reported as messages alongside the
// request so the form can be re-rendered with what the user typed.
func bindPersonForm(r *http.Request) (core.PersonUpdateRequest, []string, error) {
	if err := r.ParseForm(); err != nil {
		return core.PersonUpdateRequest{}, nil, fmt.Errorf("parse form: %w", err)
	}
	form := r.PostForm

	req := core.PersonUpdateRequest{
		PersonName: strings.TrimSpace(form.Get("PersonName")),
		Email:      strings.TrimSpace(form.Get("Email")),
		Address:    strings.TrimSpace(form.Get("Address")),
	}
	var problems []string

	if v := strings.TrimSpace(form.Get("DateOfBirth")); v != "" {
		dob, err := time.ParseInLocation(formDateLayout, v, time.UTC)
		if err != nil {
			problems = append(problems, "Date of Birth is invalid")
		} else {
			req.DateOfBirth = &dob
		}
	}

	if v := strings.TrimSpace(form.Get("Gender")); v != "" {
		if g, ok := core.ParseGender(v); ok {
			req.Gender = g
		} else {
			// Left for the validator to report.
			req.Gender = core.Gender(v)
		}
	}

	if v := strings.TrimSpace(form.Get("CountryID")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			problems = append(problems, "Country is invalid")
		} else {
			req.CountryID = &id
		}
	}

	req.ReceiveNewsLetters = checkbox(form.Get("ReceiveNewsLetters"))
	return req, problems, nil
}

// checkbox interprets the value a browser posts for a checked box.
func checkbox(v string) bool {
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

// addRequest narrows a bound form to the fields accepted on create.
func addRequest(f core.PersonUpdateRequest) core.PersonAddRequest {
	return core.PersonAddRequest{
		PersonName:         f.PersonName,
		Email:              f.Email,
		DateOfBirth:        f.DateOfBirth,
		Gender:             f.Gender,
		CountryID:          f.CountryID,
		Address:            f.Address,
		ReceiveNewsLetters: f.ReceiveNewsLetters,
	}
}

// personIDParam parses the {personID} route parameter.
func personIDParam(r *http.Request) (*uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "personID"))
	if err != nil {
		return nil, false
	}
	return &id, true
}

// redirectToIndex sends the browser back to the persons list.
func redirectToIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, indexPath, http.StatusSeeOther)
}

// render writes an HTML component with status 200.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return c.Render(r.Context(), w)
}

// sendFile streams an export to the client.
func sendFile(w http.ResponseWriter, content io.Reader, size int64, contentType, disposition, filename string) error {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	_, err := io.Copy(w, content)
	return err
}

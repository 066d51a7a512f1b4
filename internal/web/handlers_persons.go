package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/persons/internal/core"
	"github.com/JonMunkholm/persons/internal/logging"
	"github.com/JonMunkholm/persons/internal/web/middleware"
	"github.com/JonMunkholm/persons/internal/web/templates"
)

// handlePersonsIndex renders the filtered and sorted person list.
func (s *Server) handlePersonsIndex(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	q := middleware.ListQueryFromContext(ctx)

	logging.WithFields(ctx,
		"search_by", q.SearchBy,
		"search_string", q.SearchString,
		"sort_by", q.SortBy,
		"sort_order", q.SortOrder,
	).Debug("list persons")

	persons, err := s.deps.Persons.GetFilteredPersons(ctx, q.SearchBy, q.SearchString)
	if err != nil {
		return err
	}
	persons = s.deps.Persons.GetSortedPersons(persons, q.SortBy, q.SortOrder)

	page := templates.NewListPage(persons, q.SearchBy, q.SearchString, q.SortBy, q.SortOrder)
	return render(w, r, templates.PersonsIndex(page))
}

func (s *Server) handlePersonCreateForm(w http.ResponseWriter, r *http.Request) error {
	return s.renderPersonForm(w, r, false, core.PersonUpdateRequest{}, nil)
}

// handlePersonCreate adds a person, or re-renders the form with every
// validation message when the input is rejected.
func (s *Server) handlePersonCreate(w http.ResponseWriter, r *http.Request) error {
	form, problems, err := bindPersonForm(r)
	if err != nil {
		return err
	}

	req := addRequest(form)
	problems = append(problems, core.ValidateStruct(req).Messages()...)
	if len(problems) > 0 {
		return s.renderPersonForm(w, r, false, form, problems)
	}

	if _, err := s.deps.Persons.AddPerson(r.Context(), &req); err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			return s.renderPersonForm(w, r, false, form, []string{verr.Message})
		}
		return err
	}

	redirectToIndex(w, r)
	return nil
}

func (s *Server) handlePersonEditForm(w http.ResponseWriter, r *http.Request) error {
	id, ok := personIDParam(r)
	if !ok {
		redirectToIndex(w, r)
		return nil
	}

	person, err := s.deps.Persons.GetPersonByPersonID(r.Context(), id)
	if err != nil {
		return err
	}
	if person == nil {
		redirectToIndex(w, r)
		return nil
	}

	return s.renderPersonForm(w, r, true, person.ToPersonUpdateRequest(), nil)
}

// handlePersonEdit replaces the person's fields. A person that vanished
// before or during the update sends the browser back to the list.
func (s *Server) handlePersonEdit(w http.ResponseWriter, r *http.Request) error {
	id, ok := personIDParam(r)
	if !ok {
		redirectToIndex(w, r)
		return nil
	}

	existing, err := s.deps.Persons.GetPersonByPersonID(r.Context(), id)
	if err != nil {
		return err
	}
	if existing == nil {
		redirectToIndex(w, r)
		return nil
	}

	form, problems, err := bindPersonForm(r)
	if err != nil {
		return err
	}
	form.PersonID = *id

	problems = append(problems, core.ValidateStruct(form).Messages()...)
	if len(problems) > 0 {
		return s.renderPersonForm(w, r, true, form, problems)
	}

	if _, err := s.deps.Persons.UpdatePerson(r.Context(), &form); err != nil {
		var verr *core.ValidationError
		switch {
		case errors.Is(err, core.ErrNotFound):
			redirectToIndex(w, r)
			return nil
		case errors.As(err, &verr):
			return s.renderPersonForm(w, r, true, form, []string{verr.Message})
		}
		return err
	}

	redirectToIndex(w, r)
	return nil
}

func (s *Server) handlePersonDeleteForm(w http.ResponseWriter, r *http.Request) error {
	id, ok := personIDParam(r)
	if !ok {
		redirectToIndex(w, r)
		return nil
	}

	person, err := s.deps.Persons.GetPersonByPersonID(r.Context(), id)
	if err != nil {
		return err
	}
	if person == nil {
		redirectToIndex(w, r)
		return nil
	}

	return render(w, r, templates.PersonDelete(templates.DeletePage{Person: *person}))
}

func (s *Server) handlePersonDelete(w http.ResponseWriter, r *http.Request) error {
	id, ok := personIDParam(r)
	if !ok {
		redirectToIndex(w, r)
		return nil
	}

	person, err := s.deps.Persons.GetPersonByPersonID(r.Context(), id)
	if err != nil {
		return err
	}
	if person != nil {
		if _, err := s.deps.Persons.DeletePerson(r.Context(), id); err != nil {
			return err
		}
	}

	redirectToIndex(w, r)
	return nil
}

// renderPersonForm renders the create or edit form with the country list loaded.
func (s *Server) renderPersonForm(w http.ResponseWriter, r *http.Request, edit bool, person core.PersonUpdateRequest, problems []string) error {
	countries, err := s.deps.Countries.GetAllCountries(r.Context())
	if err != nil {
		return err
	}

	form := templates.PersonForm{
		Person:    person,
		Genders:   core.Genders,
		Countries: countries,
		Errors:    problems,
	}
	if edit {
		form.Title = "Edit Person"
		form.Action = "/persons/edit/" + person.PersonID.String()
		return render(w, r, templates.PersonEdit(form))
	}
	form.Title = "Create Person"
	form.Action = "/persons/create"
	return render(w, r, templates.PersonCreate(form))
}

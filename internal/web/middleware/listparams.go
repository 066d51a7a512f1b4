package middleware

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/persons/internal/core"
)

// ListQuery is the normalized search and sort state of a list request.
type ListQuery struct {
	SearchBy     string
	SearchString string
	SortBy       string
	SortOrder    core.SortOrder
}

// DefaultListQuery is used when the list is requested without parameters.
var DefaultListQuery = ListQuery{
	SearchBy:  string(core.FieldPersonName),
	SortBy:    string(core.FieldPersonName),
	SortOrder: core.SortAsc,
}

type listQueryKey struct{}

// ListParams reads searchBy, searchString, sortBy and sortOrder from the
// query string and stores the normalized ListQuery in the request context.
//
// An unknown or unsearchable searchBy falls back to PersonName; an empty
// sortBy falls back to PersonName and sortOrder defaults to ASC.
func ListParams(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		lq := DefaultListQuery

		if searchBy := q.Get("searchBy"); searchBy != "" {
			if f, ok := core.ParseField(searchBy); ok && f.Searchable() {
				lq.SearchBy = string(f)
			}
		}
		lq.SearchString = q.Get("searchString")

		if sortBy := q.Get("sortBy"); sortBy != "" {
			lq.SortBy = sortBy
		}
		lq.SortOrder = core.ParseSortOrder(q.Get("sortOrder"))

		ctx := context.WithValue(r.Context(), listQueryKey{}, lq)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ListQueryFromContext returns the ListQuery stored by ListParams, or
// DefaultListQuery when the middleware did not run.
func ListQueryFromContext(ctx context.Context) ListQuery {
	if lq, ok := ctx.Value(listQueryKey{}).(ListQuery); ok {
		return lq
	}
	return DefaultListQuery
}

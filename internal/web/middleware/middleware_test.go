package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/persons/internal/core"
)

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestResponseHeader(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"handler writes body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("hello"))
		}},
		{"handler writes status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}},
		{"handler writes nothing", func(w http.ResponseWriter, r *http.Request) {}},
		{"handler sets the same header", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Key", "from-handler")
			w.Write([]byte("hello"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := ResponseHeader("X-Key", "X-Value")(tt.handler)
			rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, "X-Value", rec.Header().Get("X-Key"))
		})
	}
}

func TestResponseHeader_Nested(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	h := ResponseHeader("X-Outer", "1")(ResponseHeader("X-Inner", "2")(inner))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "1", rec.Header().Get("X-Outer"))
	assert.Equal(t, "2", rec.Header().Get("X-Inner"))
	assert.Equal(t, "ok", rec.Body.String())
}

func TestLastModified(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	now := func() time.Time { return fixed }

	h := LastModified(now)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Thu, 02 Jan 2025 03:04:05 GMT", rec.Header().Get("Last-Modified"))

	h = LastModified(now)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Last-Modified", "Mon, 01 Jan 2024 00:00:00 GMT")
	}))
	rec = serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Mon, 01 Jan 2024 00:00:00 GMT", rec.Header().Get("Last-Modified"))
}

func TestCookieAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := CookieAuth("Auth-Key", "A100")(ok)

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   int
	}{
		{"no cookie", nil, http.StatusUnauthorized},
		{"wrong value", &http.Cookie{Name: "Auth-Key", Value: "A101"}, http.StatusUnauthorized},
		{"wrong name", &http.Cookie{Name: "Auth", Value: "A100"}, http.StatusUnauthorized},
		{"valid", &http.Cookie{Name: "Auth-Key", Value: "A100"}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			assert.Equal(t, tt.want, serve(h, req).Code)
		})
	}
}

func TestListParams(t *testing.T) {
	tests := []struct {
		query string
		want  ListQuery
	}{
		{"", DefaultListQuery},
		{"searchBy=Email&searchString=gmail", ListQuery{
			SearchBy: "Email", SearchString: "gmail", SortBy: "PersonName", SortOrder: core.SortAsc,
		}},
		{"searchBy=Bogus&searchString=x", ListQuery{
			SearchBy: "PersonName", SearchString: "x", SortBy: "PersonName", SortOrder: core.SortAsc,
		}},
		{"searchBy=Age", ListQuery{
			SearchBy: "PersonName", SortBy: "PersonName", SortOrder: core.SortAsc,
		}},
		{"searchBy=CountryID&searchString=us", ListQuery{
			SearchBy: "Country", SearchString: "us", SortBy: "PersonName", SortOrder: core.SortAsc,
		}},
		{"sortBy=Age&sortOrder=desc", ListQuery{
			SearchBy: "PersonName", SortBy: "Age", SortOrder: core.SortDesc,
		}},
		{"sortOrder=sideways", DefaultListQuery},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got ListQuery
			h := ListParams(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ListQueryFromContext(r.Context())
			}))
			serve(h, httptest.NewRequest(http.MethodGet, "/persons/index?"+tt.query, nil))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListQueryFromContext_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, DefaultListQuery, ListQueryFromContext(req.Context()))
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		headers map[string]string
		want    string
	}{
		{"untrusted keeps remote", nil, "203.0.113.9:5000",
			map[string]string{"X-Real-IP": "10.0.0.1"}, "203.0.113.9:5000"},
		{"trusted uses X-Real-IP", []string{"10.0.0.0/8"}, "10.1.2.3:5000",
			map[string]string{"X-Real-IP": "198.51.100.7"}, "198.51.100.7"},
		{"trusted uses first forwarded hop", []string{"10.1.2.3"}, "10.1.2.3:5000",
			map[string]string{"X-Forwarded-For": "198.51.100.7, 10.1.2.3"}, "198.51.100.7"},
		{"invalid header ignored", []string{"10.0.0.0/8"}, "10.1.2.3:5000",
			map[string]string{"X-Real-IP": "not-an-ip"}, "10.1.2.3:5000"},
		{"invalid trusted entry skipped", []string{"bogus", " "}, "10.1.2.3:5000",
			map[string]string{"X-Real-IP": "198.51.100.7"}, "10.1.2.3:5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			serve(h, req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecover(t *testing.T) {
	var caught error
	onError := func(w http.ResponseWriter, r *http.Request, err error) {
		caught = err
		w.WriteHeader(http.StatusInternalServerError)
	}

	t.Run("string panic", func(t *testing.T) {
		h := Recover(onError)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("kaboom")
		}))
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Error(t, caught)
		assert.Contains(t, caught.Error(), "kaboom")
	})

	t.Run("error panic keeps the chain", func(t *testing.T) {
		h := Recover(onError)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(core.ErrNotFound)
		}))
		serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, errors.Is(caught, core.ErrNotFound))
	})

	t.Run("abort handler is re-panicked", func(t *testing.T) {
		h := Recover(onError)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))
		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}

func TestLogger_PassesThrough(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

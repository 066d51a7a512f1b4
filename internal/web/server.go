// Package web provides the HTTP server and handlers of the persons directory.
package web

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/persons/internal/config"
	"github.com/JonMunkholm/persons/internal/core"
	"github.com/JonMunkholm/persons/internal/web/middleware"
)

// PersonsService is the person operations the handlers use.
type PersonsService interface {
	AddPerson(ctx context.Context, req *core.PersonAddRequest) (core.PersonResponse, error)
	GetPersonByPersonID(ctx context.Context, id *uuid.UUID) (*core.PersonResponse, error)
	GetFilteredPersons(ctx context.Context, searchBy, searchString string) ([]core.PersonResponse, error)
	GetSortedPersons(persons []core.PersonResponse, sortBy string, order core.SortOrder) []core.PersonResponse
	UpdatePerson(ctx context.Context, req *core.PersonUpdateRequest) (core.PersonResponse, error)
	DeletePerson(ctx context.Context, id *uuid.UUID) (bool, error)
}

// CountriesService is the country operations the handlers use.
type CountriesService interface {
	GetAllCountries(ctx context.Context) ([]core.CountryResponse, error)
	UploadCountriesFromExcel(ctx context.Context, r io.Reader) (int, error)
}

// Exporter renders the person list as files.
type Exporter interface {
	CSV(ctx context.Context) (*bytes.Reader, error)
	Excel(ctx context.Context) (*bytes.Reader, error)
	PDF(ctx context.Context) (*bytes.Reader, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators of a Server.
type Deps struct {
	Persons   PersonsService
	Countries CountriesService
	Exporter  Exporter
	Store     Pinger

	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// Server is the HTTP server of the persons directory.
type Server struct {
	deps     Deps
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server
	limiters []*rateLimiter
	now      func() time.Time
}

// NewServer creates a Server with all middleware and routes registered.
func NewServer(deps Deps, cfg *config.Config) *Server {
	s := &Server{
		deps:   deps,
		cfg:    cfg,
		router: chi.NewRouter(),
		now:    time.Now,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recover(s.respondError))
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
	s.router.Use(middleware.ResponseHeader("X-App-Name", s.cfg.App.Name))
	s.router.Use(requestMetadata)

	if s.cfg.Rate.Enabled {
		s.router.Use(s.newLimiter(s.cfg.Rate.RequestsPerMinute).middleware)
	}
}

func (s *Server) newLimiter(perMinute int) *rateLimiter {
	rl := newRateLimiter(perMinute, time.Minute)
	s.limiters = append(s.limiters, rl)
	return rl
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	if s.deps.Gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{}))
	}

	controller := middleware.ResponseHeader("X-Controller", "Persons")
	listing := chi.Chain(
		middleware.ResponseHeader("X-Custom-Key", "Custom-Value"),
		middleware.LastModified(s.now),
		middleware.ListParams,
	)
	s.router.With(controller).With(listing...).Get("/", s.handle(s.handlePersonsIndex))

	// heavy is applied to spreadsheet uploads and file exports.
	heavy := func(next http.Handler) http.Handler { return next }
	if s.cfg.Rate.Enabled {
		heavy = s.newLimiter(s.cfg.Rate.UploadLimit).middleware
	}

	s.router.Route("/persons", func(r chi.Router) {
		r.Use(controller)

		r.With(listing...).Get("/", s.handle(s.handlePersonsIndex))
		r.With(listing...).Get("/index", s.handle(s.handlePersonsIndex))

		r.Get("/create", s.handle(s.handlePersonCreateForm))
		r.Post("/create", s.handle(s.handlePersonCreate))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CookieAuth(s.cfg.Security.AuthCookieName, s.cfg.Security.AuthCookieValue))
			r.Get("/edit/{personID}", s.handle(s.handlePersonEditForm))
			r.Post("/edit/{personID}", s.handle(s.handlePersonEdit))
		})

		r.Get("/delete/{personID}", s.handle(s.handlePersonDeleteForm))
		r.Post("/delete/{personID}", s.handle(s.handlePersonDelete))

		r.Group(func(r chi.Router) {
			r.Use(heavy)
			r.Get("/PersonsPDF", s.handle(s.handlePersonsPDF))
			r.Get("/PersonsCVS", s.handle(s.handlePersonsCSV))
			r.Get("/PersonsCSV", s.handle(s.handlePersonsCSV))
			r.Get("/PersonsExcel", s.handle(s.handlePersonsExcel))
		})
	})

	s.router.Route("/countries", func(r chi.Router) {
		r.Get("/UploadFromExcel", s.handle(s.handleCountriesUploadForm))
		r.With(heavy).Post("/UploadFromExcel", s.handle(s.handleCountriesUpload))
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, rl := range s.limiters {
		rl.close()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// handleHealth reports 503 when the store cannot be reached.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if s.deps.Store != nil {
		if err := s.deps.Store.Ping(r.Context()); err != nil {
			slog.WarnContext(r.Context(), "health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, "unavailable\n")
			return
		}
	}
	_, _ = io.WriteString(w, "ok\n")
}

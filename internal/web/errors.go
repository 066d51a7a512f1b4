package web

// errors.go is the exception interceptor of the web layer.
//
// Handlers return an error instead of writing a failure response. The
// handle adapter turns whatever comes back into a response:
//  1. The technical error is logged with the request ID for correlation
//  2. In development the raw error text is returned as plain text
//  3. Otherwise the error is mapped via core.MapError to a coded user message
//
// Panics caught by the Recover middleware go through the same path.

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/persons/internal/core"
	"github.com/JonMunkholm/persons/internal/logging"
	"github.com/JonMunkholm/persons/internal/web/templates"
)

// handlerFunc is an http.HandlerFunc that can fail.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts a handlerFunc to http.HandlerFunc.
func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.respondError(w, r, err)
		}
	}
}

// respondError writes the failure response for err.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	logging.WithFields(r.Context(),
		"path", r.URL.Path,
		"method", r.Method,
	).Error("request error",
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if s.cfg.App.IsDevelopment() {
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	page := templates.ErrorPage{
		Status:  status,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	}
	if rerr := templates.Error(page).Render(r.Context(), w); rerr != nil {
		slog.ErrorContext(r.Context(), "render error page", "error", rerr)
	}
}

// statusFor picks the status code of an unhandled error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyImports):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

var errPayloadTooLarge = errors.New("file too large")

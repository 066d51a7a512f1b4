package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recover turns a panic in the handler chain into a call to onError, so
// panics get the same treatment as returned errors.
// http.ErrAbortHandler is re-panicked untouched.
func Recover(onError func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				slog.ErrorContext(r.Context(), "panic recovered",
					"path", r.URL.Path,
					"error", err,
					"stack", string(debug.Stack()),
				)
				onError(w, r, fmt.Errorf("panic: %w", err))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

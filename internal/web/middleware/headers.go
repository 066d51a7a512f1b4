package middleware

import (
	"net/http"
	"time"
)

// ResponseHeader sets key to value on every response passing through.
//
// The header is added after the inner handler has run but before the
// headers are flushed, so it wins over anything the handler set itself.
func ResponseHeader(key, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hw := &headerWriter{ResponseWriter: w, apply: func(h http.Header) {
				h.Set(key, value)
			}}
			next.ServeHTTP(hw, r)
			hw.flush()
		})
	}
}

// LastModified stamps responses with the time the request was served.
// Handlers that know a better value can set the header themselves.
func LastModified(now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hw := &headerWriter{ResponseWriter: w, apply: func(h http.Header) {
				if h.Get("Last-Modified") == "" {
					h.Set("Last-Modified", now().UTC().Format(http.TimeFormat))
				}
			}}
			next.ServeHTTP(hw, r)
			hw.flush()
		})
	}
}

// headerWriter runs apply exactly once, right before the status line is written.
type headerWriter struct {
	http.ResponseWriter
	apply   func(http.Header)
	applied bool
}

func (w *headerWriter) before() {
	if w.applied {
		return
	}
	w.applied = true
	w.apply(w.ResponseWriter.Header())
}

func (w *headerWriter) WriteHeader(status int) {
	w.before()
	w.ResponseWriter.WriteHeader(status)
}

func (w *headerWriter) Write(b []byte) (int, error) {
	w.before()
	return w.ResponseWriter.Write(b)
}

// flush covers handlers that return without writing anything.
func (w *headerWriter) flush() {
	if !w.applied {
		w.before()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *headerWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

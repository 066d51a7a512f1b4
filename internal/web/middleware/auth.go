package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
)

// CookieAuth returns middleware that only lets a request through when it
// carries cookie name set to want. Anything else gets 401 Unauthorized.
func CookieAuth(name, want string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(name)
			if err != nil {
				slog.Warn("auth: missing cookie",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			if !validCookie(c.Value, want) {
				slog.Warn("auth: invalid cookie value",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// validCookie compares in constant time.
func validCookie(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

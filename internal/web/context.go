package web

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"github.com/JonMunkholm/persons/internal/core"
)

// requestMetadata adds the client IP and a short description of the
// client's browser to the request context, so services can tag change
// log lines with them. RemoteAddr has already been rewritten by TrustedRealIP.
func requestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := core.ContextWithIPAddress(r.Context(), clientIP(r))
		ctx = core.ContextWithUserAgent(ctx, describeUserAgent(r.UserAgent()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// describeUserAgent condenses a User-Agent header to "Browser version (OS)".
// Headers the parser cannot make sense of are returned unchanged.
func describeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}

	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		return raw
	}

	var b strings.Builder
	b.WriteString(name)
	if version != "" {
		b.WriteString(" " + version)
	}
	if os := ua.OS(); os != "" {
		b.WriteString(" (" + os + ")")
	}
	switch {
	case ua.Bot():
		b.WriteString(" [bot]")
	case ua.Mobile():
		b.WriteString(" [mobile]")
	}
	return b.String()
}

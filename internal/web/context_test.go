package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JonMunkholm/persons/internal/core"
)

func TestDescribeUserAgent(t *testing.T) {
	chrome := "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	got := describeUserAgent(chrome)
	assert.Contains(t, got, "Chrome 120.0.0.0")
	assert.Contains(t, got, "Linux")

	assert.Empty(t, describeUserAgent(""))
}

func TestRequestMetadata(t *testing.T) {
	var ip, ua string
	h := requestMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip = core.GetIPAddressFromContext(r.Context())
		ua = core.GetUserAgentFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "198.51.100.7", ip)
	assert.Contains(t, ua, "Chrome")
}

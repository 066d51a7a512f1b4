package core

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	ctxKeyIPAddress contextKey = "client_ip"
	ctxKeyUserAgent contextKey = "user_agent"
)

// ContextWithIPAddress adds the client IP to context for change logging.
func ContextWithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyIPAddress, ip)
}

// ContextWithUserAgent adds the User-Agent to context for change logging.
func ContextWithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, ctxKeyUserAgent, ua)
}

// GetIPAddressFromContext extracts IP address from context.
func GetIPAddressFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyIPAddress).(string); ok {
		return v
	}
	return ""
}

// GetUserAgentFromContext extracts User-Agent from context.
func GetUserAgentFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUserAgent).(string); ok {
		return v
	}
	return ""
}

// logChange writes one info line per committed mutation, tagged with
// whoever made the request.
func logChange(ctx context.Context, msg string, args ...any) {
	if ip := GetIPAddressFromContext(ctx); ip != "" {
		args = append(args, "ip", ip)
	}
	if ua := GetUserAgentFromContext(ctx); ua != "" {
		args = append(args, "user_agent", ua)
	}
	slog.InfoContext(ctx, msg, args...)
}

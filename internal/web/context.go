package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/corrector/internal/history"
)

// WithRequestMetadata adds the client IP and User-Agent to ctx for
// history entries.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = history.ContextWithIPAddress(ctx, clientIP(r))
	ctx = history.ContextWithUserAgent(ctx, r.Header.Get("User-Agent"))
	return ctx
}

// clientIP returns the host part of RemoteAddr, which TrustedRealIP has
// already replaced with the forwarded address for trusted proxies.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets the values; the statements service and the handlers read them
// without importing net/http.
//
//	requestID := requestcontext.RequestID(ctx)
//	version := requestcontext.XAPIVersion(ctx)
//	now := requestcontext.Now(ctx)
//
// Tests inject values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	"xapi/pkg/domain"
)

type (
	requestIDKey   struct{}
	xapiVersionKey struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	requestTimeKey struct{}
)

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// XAPIVersion retrieves the version negotiated from X-Experience-API-Version.
// Returns the empty version if negotiation did not run.
func XAPIVersion(ctx context.Context) domain.XAPIVersion {
	if v, ok := ctx.Value(xapiVersionKey{}).(domain.XAPIVersion); ok {
		return v
	}
	return ""
}

// WithXAPIVersion injects the negotiated xAPI version into the context.
func WithXAPIVersion(ctx context.Context, v domain.XAPIVersion) context.Context {
	return context.WithValue(ctx, xapiVersionKey{}, v)
}

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey{}).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() outside a request.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

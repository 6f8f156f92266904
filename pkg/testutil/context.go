package testutil

import (
	"net/http"

	"xapi/pkg/domain"
	"xapi/pkg/requestcontext"
)

// WithRequestID adds a request ID to the request context, as the request id
// middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithXAPIVersion adds a negotiated xAPI version to the request context, as the
// version middleware would. Unsupported versions are silently ignored.
func WithXAPIVersion(req *http.Request, v string) *http.Request {
	parsed, err := domain.ParseXAPIVersion(v)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithXAPIVersion(req.Context(), parsed))
}

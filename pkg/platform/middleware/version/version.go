// Package version provides middleware for xAPI version negotiation.
package version

import (
	"log/slog"
	"net/http"

	"xapi/pkg/domain"
	"xapi/pkg/platform/httputil"
	"xapi/pkg/requestcontext"
)

// Header is the xAPI version header carried by requests and responses.
const Header = "X-Experience-API-Version"

// RequireXAPIVersion rejects requests whose X-Experience-API-Version header is
// missing or names an unsupported version. Accepted versions are stored on the
// context. Every response reports the server's version.
//
// Usage:
//
//	r.Group(func(r chi.Router) {
//	    r.Use(version.RequireXAPIVersion(logger))
//	    // ... xAPI routes
//	})
func RequireXAPIVersion(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			w.Header().Set(Header, domain.CurrentXAPIVersion().String())

			v, err := domain.ParseXAPIVersion(r.Header.Get(Header))
			if err != nil {
				logger.WarnContext(ctx, "xapi version rejected",
					"version", r.Header.Get(Header),
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithXAPIVersion(ctx, v)))
		})
	}
}

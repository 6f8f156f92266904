// Package httptransport exposes the xAPI codec as a stateless validation
// gateway.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"xapi/internal/platform/config"
	"xapi/internal/platform/metrics"
	"xapi/internal/platform/middleware"
	"xapi/pkg/platform/middleware/metadata"
	"xapi/pkg/platform/middleware/requesttime"
	"xapi/pkg/platform/middleware/version"
)

// NewRouter wires the public endpoints. xAPI routes require a supported
// X-Experience-API-Version header and a bounded body; /health and /metrics
// require neither.
func NewRouter(h *Handler, cfg config.Server, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.RequestLogger(logger, m))
	r.Use(chimw.Recoverer)
	r.Use(requesttime.Middleware)

	r.Get("/health", h.HandleHealth)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Group(func(r chi.Router) {
		r.Use(version.RequireXAPIVersion(logger))
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
		h.Register(r)
	})
	return r
}

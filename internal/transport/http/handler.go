package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
	"xapi/pkg/platform/httputil"
	"xapi/pkg/requestcontext"
	"xapi/pkg/xapi"
)

// Service canonicalises xAPI payloads.
type Service interface {
	Canonicalize(ctx context.Context, body []byte) ([]*xapi.Statement, error)
	CanonicalActor(ctx context.Context, body []byte) (xapi.Actor, error)
	Void(ctx context.Context, actor xapi.Actor, target domain.StatementID) (*xapi.Statement, error)
}

// Handler is the thin HTTP layer over Service.
type Handler struct {
	service Service
	logger  *slog.Logger
	pretty  bool
}

type Option func(h *Handler)

// WithPrettyJSON indents response bodies.
func WithPrettyJSON(pretty bool) Option {
	return func(h *Handler) {
		h.pretty = pretty
	}
}

// New creates a new xAPI validation handler.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{service: service, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the xAPI routes with the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/statements/validate", h.HandleValidateStatements)
	r.Post("/statements/void", h.HandleVoidStatement)
	r.Post("/actors/validate", h.HandleValidateActor)
}

// HandleValidateStatements canonicalises one Statement or a batch.
func (h *Handler) HandleValidateStatements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := readBody(r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	batch, err := h.service.Canonicalize(ctx, body)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, statementsResponse{Statements: batch})
}

// HandleVoidStatement builds the Statement voiding statementId.
func (h *Handler) HandleVoidStatement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := readBody(r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	req, err := decodeVoidRequest(body)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	actor, err := h.service.CanonicalActor(ctx, req.Actor)
	if err != nil {
		h.writeError(ctx, w, dErrors.AtPath(err, "actor"))
		return
	}
	stmt, err := h.service.Void(ctx, actor, req.target)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stmt)
}

// HandleValidateActor canonicalises one Agent or Group.
func (h *Handler) HandleValidateActor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := readBody(r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	actor, err := h.service.CanonicalActor(ctx, body)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, actor)
}

// HandleHealth reports liveness and the served xAPI version.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		XAPIVersion: domain.CurrentXAPIVersion().String(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	if h.pretty {
		httputil.WritePrettyJSON(w, status, v)
		return
	}
	httputil.WriteJSON(w, status, v)
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "request failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, dErrors.Newf(dErrors.CodeTooLarge, "request body exceeds %d bytes", maxErr.Limit)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read request body")
	}
	if len(body) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request body is empty")
	}
	return body, nil
}

// Package statements canonicalises xAPI payloads for the validation gateway.
// It has no storage: every operation decodes, validates and re-encodes.
package statements

import (
	"context"
	"log/slog"

	"xapi/internal/platform/metrics"
	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
	"xapi/pkg/requestcontext"
	"xapi/pkg/xapi"
)

// Operation labels used for metrics and logs.
const (
	OperationValidate = "validate"
	OperationVoid     = "void"
	OperationActor    = "actor"
)

// Service runs payloads through the xAPI codec.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service. Without WithLogger nothing is logged.
func New(opts ...Option) *Service {
	s := &Service{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Canonicalize decodes a single Statement or an array of Statements.
func (s *Service) Canonicalize(ctx context.Context, body []byte) ([]*xapi.Statement, error) {
	batch, err := xapi.UnmarshalStatements(body)
	if err != nil {
		s.reject(ctx, OperationValidate, err)
		return nil, err
	}

	s.metrics.IncrementStatements(OperationValidate, len(batch))
	s.logger.InfoContext(ctx, "statements canonicalized",
		"count", len(batch),
		"xapi_version", requestcontext.XAPIVersion(ctx).String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return batch, nil
}

// CanonicalActor decodes a single Agent or Group.
func (s *Service) CanonicalActor(ctx context.Context, body []byte) (xapi.Actor, error) {
	actor, err := xapi.ActorFromJSON(body)
	if err != nil {
		s.reject(ctx, OperationActor, err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "actor canonicalized",
		"object_type", actor.ObjectType().String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return actor, nil
}

// Void builds the Statement by which actor voids target, timestamped with the
// request time.
func (s *Service) Void(ctx context.Context, actor xapi.Actor, target domain.StatementID) (*xapi.Statement, error) {
	stmt, err := xapi.NewVoidingStatementAt(actor, target, requestcontext.Now(ctx))
	if err != nil {
		s.reject(ctx, OperationVoid, err)
		return nil, err
	}

	s.metrics.IncrementStatements(OperationVoid, 1)
	s.logger.InfoContext(ctx, "voiding statement built",
		"statement_id", stmt.ID().String(),
		"voided_id", target.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return stmt, nil
}

func (s *Service) reject(ctx context.Context, operation string, err error) {
	code := dErrors.CodeOf(err)
	s.metrics.IncrementDecodeFailure(string(code))
	s.logger.WarnContext(ctx, "payload rejected",
		"operation", operation,
		"code", string(code),
		"field", dErrors.FieldOf(err),
		"request_id", requestcontext.RequestID(ctx),
	)
}

package statements

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"xapi/internal/platform/metrics"
	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
	"xapi/pkg/requestcontext"
	"xapi/pkg/xapi"
)

const attempted = `{
	"actor": {"mbox": "mailto:learner@example.com"},
	"verb": {"id": "http://adlnet.gov/expapi/verbs/attempted"},
	"object": {"id": "http://example.com/activities/course-1"}
}`

type ServiceSuite struct {
	suite.Suite
	logs    *bytes.Buffer
	metrics *metrics.Metrics
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.logs = &bytes.Buffer{}
	s.metrics = metrics.New()
	s.service = New(
		WithLogger(slog.New(slog.NewTextHandler(s.logs, nil))),
		WithMetrics(s.metrics),
	)
	s.ctx = requestcontext.WithRequestID(context.Background(), "req-42")
}

func (s *ServiceSuite) TestCanonicalize() {
	s.Run("single statement", func() {
		batch, err := s.service.Canonicalize(s.ctx, []byte(attempted))
		s.Require().NoError(err)
		s.Require().Len(batch, 1)
		s.Equal(xapi.ObjectTypeAgent, batch[0].Actor().ObjectType())
		s.False(batch[0].ID().IsNil())
	})

	s.Run("batch", func() {
		batch, err := s.service.Canonicalize(s.ctx, []byte("["+attempted+","+attempted+"]"))
		s.Require().NoError(err)
		s.Len(batch, 2)
	})

	s.Equal(3.0, promtest.ToFloat64(s.metrics.StatementsCanonicalized.WithLabelValues(OperationValidate)))
	s.Contains(s.logs.String(), "request_id=req-42")
}

func (s *ServiceSuite) TestCanonicalizeRejects() {
	tests := []struct {
		name  string
		body  string
		code  dErrors.Code
		field string
	}{
		{"not json", `{"actor":`, dErrors.CodeParse, ""},
		{"missing verb", `{"actor":{"mbox":"mailto:a@example.com"},"object":{"id":"http://example.com/a"}}`, dErrors.CodeMissingField, "verb"},
		{"unknown actor type", `{"actor":{"objectType":"Robot"},"verb":{"id":"http://example.com/v"},"object":{"id":"http://example.com/a"}}`, dErrors.CodeUnsupportedType, "actor.objectType"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.Canonicalize(s.ctx, []byte(tt.body))
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, tt.code), "got %v", err)
			if tt.field != "" {
				s.Equal(tt.field, dErrors.FieldOf(err))
			}
			s.Equal(1.0, promtest.ToFloat64(s.metrics.DecodeFailures.WithLabelValues(string(tt.code))))
		})
	}
	s.Contains(s.logs.String(), "payload rejected")
}

func (s *ServiceSuite) TestCanonicalActor() {
	s.Run("group", func() {
		actor, err := s.service.CanonicalActor(s.ctx, []byte(`{"objectType":"Group","member":[{"mbox":"mailto:a@example.com"}]}`))
		s.Require().NoError(err)
		s.Equal(xapi.ObjectTypeGroup, actor.ObjectType())
	})

	s.Run("invalid mailbox", func() {
		_, err := s.service.CanonicalActor(s.ctx, []byte(`{"mbox":"a@example.com"}`))
		s.True(dErrors.HasCode(err, dErrors.CodeFormat))
		s.Equal("mbox", dErrors.FieldOf(err))
	})
}

func (s *ServiceSuite) TestVoid() {
	actor, err := xapi.NewAgentBuilder("Admin").WithMailBox("admin@example.com")
	s.Require().NoError(err)
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(s.ctx, now)

	s.Run("stamps the request time", func() {
		target := domain.NewStatementID()
		stmt, err := s.service.Void(ctx, actor, target)
		s.Require().NoError(err)

		voided, ok := xapi.IsVoiding(stmt)
		s.True(ok)
		s.Equal(target, voided)
		ts, ok := stmt.Timestamp()
		s.True(ok)
		s.True(now.Equal(ts))
	})

	s.Run("nil target", func() {
		_, err := s.service.Void(ctx, actor, domain.StatementID{})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal("object.id", dErrors.FieldOf(err))
	})

	s.Equal(1.0, promtest.ToFloat64(s.metrics.StatementsCanonicalized.WithLabelValues(OperationVoid)))
}

func (s *ServiceSuite) TestWorksWithoutOptions() {
	_, err := New().Canonicalize(context.Background(), []byte(attempted))
	s.NoError(err)
}

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xapi/internal/platform/metrics"
	"xapi/pkg/requestcontext"
)

func TestRequestID(t *testing.T) {
	var seen string
	r := chi.NewRouter()
	r.Use(chimw.RequestID, RequestID)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(chimw.RequestIDHeader, "client-chosen")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "client-chosen", seen)
	assert.Equal(t, "client-chosen", rec.Header().Get(RequestIDHeader))
}

func TestBodyLimit(t *testing.T) {
	var readErr error
	h := BodyLimit(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))

	var maxErr *http.MaxBytesError
	require.True(t, errors.As(readErr, &maxErr))
	assert.Equal(t, int64(8), maxErr.Limit)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(RequestLogger(logger, m))
	r.Post("/statements/validate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"parse_error"}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/statements/validate", nil)
	req = req.WithContext(requestcontext.WithRequestID(req.Context(), "req-7"))
	r.ServeHTTP(httptest.NewRecorder(), req)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "request served", rec["msg"])
	assert.Equal(t, "/statements/validate", rec["route"])
	assert.Equal(t, float64(http.StatusBadRequest), rec["status"])
	assert.Equal(t, "req-7", rec["request_id"])

	assert.Equal(t, 1, promtest.CollectAndCount(m.RequestLatency))
}

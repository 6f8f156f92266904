package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the validation gateway.
type Metrics struct {
	registry *prometheus.Registry

	// Statements accepted by the codec, by operation
	StatementsCanonicalized *prometheus.CounterVec

	// Codec rejections by error code
	DecodeFailures *prometheus.CounterVec

	// Request latency by route and status
	RequestLatency *prometheus.HistogramVec
}

// New creates a Metrics instance on its own registry, with Go runtime and
// process collectors attached.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		StatementsCanonicalized: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "xapi_gateway_statements_total",
			Help: "Total statements accepted by the codec",
		}, []string{"operation"}), // operation: "validate", "void"

		DecodeFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "xapi_gateway_decode_failures_total",
			Help: "Total payloads rejected by the codec, by error code",
		}, []string{"code"}),

		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "xapi_gateway_request_duration_seconds",
			Help:    "Duration of gateway requests by route and status",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"route", "status"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncrementStatements records n statements accepted by operation.
func (m *Metrics) IncrementStatements(operation string, n int) {
	if m != nil {
		m.StatementsCanonicalized.WithLabelValues(operation).Add(float64(n))
	}
}

// IncrementDecodeFailure records a rejected payload.
func (m *Metrics) IncrementDecodeFailure(code string) {
	if m != nil {
		m.DecodeFailures.WithLabelValues(code).Inc()
	}
}

// ObserveRequestLatency records the duration of a served request.
func (m *Metrics) ObserveRequestLatency(route string, status int, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
	}
}

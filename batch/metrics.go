package batch

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ghettovoice/weburl"
)

// Metrics collects batch parsing statistics. A nil *Metrics records nothing.
type Metrics struct {
	parsed     *prometheus.CounterVec
	failures   *prometheus.CounterVec
	validation *prometheus.CounterVec
	duration   prometheus.Histogram
}

// NewMetrics creates the batch metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		parsed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weburl_parse_total",
				Help: "Total number of parsed URLs",
			},
			[]string{"scheme", "status"},
		),
		failures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weburl_parse_errors_total",
				Help: "Total number of URL parse failures",
			},
			[]string{"error_type"},
		),
		validation: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weburl_validation_errors_total",
				Help: "Total number of non-fatal URL validation errors",
			},
			[]string{"kind"},
		),
		duration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "weburl_parse_duration_seconds",
				Help:    "Duration of a single URL parse in seconds",
				Buckets: []float64{.000001, .000005, .00001, .000025, .00005, .0001, .00025, .0005, .001, .01},
			},
		),
	}
}

// Parsed returns the counter of parses of scheme that ended with status "ok" or "error".
// Failed parses have an empty scheme. A nil *Metrics returns a detached counter that stays at zero.
func (m *Metrics) Parsed(scheme, status string) prometheus.Counter {
	if m == nil {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: "weburl_parse_total"})
	}
	return m.parsed.WithLabelValues(scheme, status)
}

func (m *Metrics) recordParse(u weburl.Components, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.parsed.WithLabelValues("", "error").Inc()
		m.failures.WithLabelValues(errorType(err)).Inc()
		return
	}
	m.parsed.WithLabelValues(string(u.Scheme()), "ok").Inc()
}

func (m *Metrics) recordValidation(ve weburl.ValidationError) {
	if m == nil {
		return
	}
	m.validation.WithLabelValues(string(ve)).Inc()
}

// errorType maps a parse error to a metric label, the most specific sentinel first.
func errorType(err error) string {
	switch {
	case errors.Is(err, weburl.ErrInvalidIPv4):
		return "invalid_ipv4"
	case errors.Is(err, weburl.ErrInvalidIPv6):
		return "invalid_ipv6"
	case errors.Is(err, weburl.ErrInvalidHost):
		return "invalid_host"
	case errors.Is(err, weburl.ErrHostMissing):
		return "host_missing"
	case errors.Is(err, weburl.ErrInvalidPort):
		return "invalid_port"
	case errors.Is(err, weburl.ErrInvalidScheme):
		return "invalid_scheme"
	case errors.Is(err, weburl.ErrMissingScheme):
		return "missing_scheme"
	case errors.Is(err, weburl.ErrUnexpectedTransition):
		return "unexpected_transition"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}

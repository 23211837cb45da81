package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	chatOutcomesTotal   *prometheus.CounterVec
	chatTokensTotal     *prometheus.CounterVec
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		chatOutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_relay_outcomes_total",
				Help: "Total number of chat relay requests by outcome",
			},
			[]string{"outcome"},
		),

		chatTokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_tokens_total",
				Help: "Tokens consumed by chat completions",
			},
			[]string{"model", "kind"},
		),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.chatOutcomesTotal,
		m.chatTokensTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ChatOutcome counts a relay result, e.g. "success", "validation_error"
func (m *Metrics) ChatOutcome(outcome string) {
	if m == nil {
		return
	}
	m.chatOutcomesTotal.WithLabelValues(outcome).Inc()
}

// Tokens adds prompt and completion token counts for a model
func (m *Metrics) Tokens(model string, prompt, completion int) {
	if m == nil {
		return
	}
	m.chatTokensTotal.WithLabelValues(model, "prompt").Add(float64(prompt))
	m.chatTokensTotal.WithLabelValues(model, "completion").Add(float64(completion))
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

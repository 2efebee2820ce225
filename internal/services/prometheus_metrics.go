package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names accepted by PrometheusMetrics
const (
	MetricProjectionComputed  = "projection.computed"
	MetricProjectionFailed    = "projection.failed"
	MetricProjectionDuration  = "projection.duration"
	MetricProjectionOmitted   = "projection.omitted_accounts"
	MetricRateLookup          = "rate.lookup"
	MetricRateCacheHit        = "rate.cache_hit"
	MetricRateFetchDuration   = "rate.fetch_duration"
	MetricCircuitBreakerState = "circuit_breaker.state"
	MetricAuthEvent           = "auth.event"
	MetricLedgerChange        = "ledger.change"
)

type PrometheusMetrics struct {
	projectionsTotal    *prometheus.CounterVec
	projectionDuration  prometheus.Histogram
	projectionOmitted   prometheus.Gauge
	rateLookupsTotal    *prometheus.CounterVec
	rateCacheHitsTotal  prometheus.Counter
	rateFetchDuration   prometheus.Histogram
	circuitBreakerState *prometheus.GaugeVec
	authEventsTotal     *prometheus.CounterVec
	ledgerChangesTotal  *prometheus.CounterVec
}

// NewPrometheusMetrics registers the application metrics with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		projectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_projections_total",
				Help: "Total number of projection requests by outcome",
			},
			[]string{"status"},
		),
		projectionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cashflow_projection_duration_milliseconds",
				Help:    "Projection duration in milliseconds, including rate resolution",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		projectionOmitted: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "cashflow_projection_omitted_accounts",
				Help: "Accounts left out of the grand totals by the last projection",
			},
		),
		rateLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_rate_lookups_total",
				Help: "Total number of conversion rate lookups",
			},
			[]string{"currency", "status"},
		),
		rateCacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cashflow_rate_cache_hits_total",
				Help: "Rate table lookups served from the cache",
			},
		),
		rateFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cashflow_rate_fetch_duration_seconds",
				Help:    "Rate provider HTTP call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cashflow_circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
		authEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		ledgerChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_ledger_changes_total",
				Help: "Accounts, categories, transactions and budgets written",
			},
			[]string{"resource", "action"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricProjectionComputed:
		m.projectionsTotal.WithLabelValues("success").Inc()
	case MetricProjectionFailed:
		m.projectionsTotal.WithLabelValues("failed_" + tags["reason"]).Inc()
	case MetricRateLookup:
		m.rateLookupsTotal.WithLabelValues(tags["currency"], tags["status"]).Inc()
	case MetricRateCacheHit:
		m.rateCacheHitsTotal.Inc()
	case MetricAuthEvent:
		if eventType := tags["event_type"]; eventType != "" {
			m.authEventsTotal.WithLabelValues(eventType).Inc()
		}
	case MetricLedgerChange:
		m.ledgerChangesTotal.WithLabelValues(tags["resource"], tags["action"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricProjectionDuration:
		m.projectionDuration.Observe(float64(duration.Milliseconds()))
	case MetricRateFetchDuration:
		m.rateFetchDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricProjectionOmitted:
		m.projectionOmitted.Set(value)
	case MetricCircuitBreakerState:
		m.circuitBreakerState.WithLabelValues(tags["service"]).Set(value)
	}
}

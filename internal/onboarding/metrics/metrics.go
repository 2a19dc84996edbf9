package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the onboarding module.
type Metrics struct {
	// Accepted onboarding requests, before any outcome is known
	Started prometheus.Counter

	// Onboarding runs by terminal outcome
	Outcomes *prometheus.CounterVec

	// Requests rejected before orchestration started
	ConfigRejections prometheus.Counter

	// Per-feature upstream call outcomes
	FeatureOutcomes *prometheus.CounterVec

	// End-to-end orchestration latency
	OnboardLatency prometheus.Histogram
}

// New creates a new Metrics instance with all onboarding metrics registered.
func New() *Metrics {
	return &Metrics{
		Started: promauto.NewCounter(prometheus.CounterOpts{
			Name: "onboarding_runs_started_total",
			Help: "Onboarding requests accepted for orchestration",
		}),

		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_runs_total",
			Help: "Total onboarding runs by terminal outcome",
		}, []string{"outcome", "customer_type"}), // outcome: "completed", "escalated", "failed"

		ConfigRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "onboarding_config_rejections_total",
			Help: "Requests rejected for unknown brand, product, or customer type",
		}),

		FeatureOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_feature_calls_total",
			Help: "Feature executor outcomes by feature and result",
		}, []string{"feature", "result"}), // result: "success", "failure"

		OnboardLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "onboarding_duration_seconds",
			Help:    "Duration of one full onboarding orchestration",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementStarted records an accepted onboarding request.
func (m *Metrics) IncrementStarted() {
	if m != nil {
		m.Started.Inc()
	}
}

// IncrementOutcome records a terminal onboarding outcome.
func (m *Metrics) IncrementOutcome(outcome, customerType string) {
	if m != nil {
		m.Outcomes.WithLabelValues(outcome, customerType).Inc()
	}
}

// IncrementConfigRejection records a pre-orchestration rejection.
func (m *Metrics) IncrementConfigRejection() {
	if m != nil {
		m.ConfigRejections.Inc()
	}
}

// IncrementFeature records one feature executor outcome.
func (m *Metrics) IncrementFeature(feature, result string) {
	if m != nil {
		m.FeatureOutcomes.WithLabelValues(feature, result).Inc()
	}
}

// ObserveOnboardLatency records the total orchestration duration.
func (m *Metrics) ObserveOnboardLatency(d time.Duration) {
	if m != nil {
		m.OnboardLatency.Observe(d.Seconds())
	}
}

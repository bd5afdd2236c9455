package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultMetricsNamespace = "library"

// Metrics holds Prometheus metrics for authorization decisions.
type Metrics struct {
	decisionsTotal   *prometheus.CounterVec
	decisionDuration *prometheus.HistogramVec
	registerer       prometheus.Registerer
}

// NewMetrics registers with prometheus.DefaultRegisterer so the metrics are
// served by the default /metrics handler.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWithRegisterer(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer creates a new Metrics instance with a custom registerer.
func NewMetricsWithRegisterer(namespace string, registerer prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = defaultMetricsNamespace
	}

	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		registerer: registerer,
	}

	m.decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "decisions_total",
			Help:      "Total number of authorization decisions",
		},
		[]string{"outcome", "reason"},
	)

	m.decisionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "decision_duration_seconds",
			Help:      "Authorization decision duration in seconds",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		},
		[]string{"outcome"},
	)

	// Duplicate registration is ignored so tests can share a registerer.
	for _, c := range []prometheus.Collector{m.decisionsTotal, m.decisionDuration} {
		_ = m.registerer.Register(c)
	}

	return m
}

// Init pre-initializes label combinations so series appear before the first request.
func (m *Metrics) Init() {
	m.decisionsTotal.WithLabelValues(string(OutcomeBypass), "")
	m.decisionsTotal.WithLabelValues(string(OutcomeAuthorized), "")
	for _, reason := range []string{
		string(ReasonMissingCredential),
		string(ReasonBadCredential),
		string(ReasonInsufficientPermission),
		ErrForbiddenSelfAccess.Error(),
		ErrForbiddenLibraryScope.Error(),
	} {
		m.decisionsTotal.WithLabelValues(string(OutcomeRejected), reason)
	}
	for _, o := range []Outcome{OutcomeBypass, OutcomeAuthorized, OutcomeRejected} {
		m.decisionDuration.WithLabelValues(string(o))
	}
}

// RecordDecision records a decision. Rejections are labelled with their
// internal detail rather than the client-visible reason.
func (m *Metrics) RecordDecision(d Decision, duration time.Duration) {
	if m == nil {
		return
	}

	reason := ""
	if d.Rejection != nil {
		reason = d.Rejection.Detail()
	}

	m.decisionsTotal.WithLabelValues(string(d.Outcome), reason).Inc()
	m.decisionDuration.WithLabelValues(string(d.Outcome)).Observe(duration.Seconds())
}

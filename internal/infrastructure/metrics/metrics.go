// Package metrics holds the Prometheus collectors of the API and worker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricHTTPRequestsTotal          = "storymap_http_requests_total"
	MetricHTTPRequestDuration        = "storymap_http_request_duration_seconds"
	MetricStoriesSubmittedTotal      = "storymap_stories_submitted_total"
	MetricModerationTransitionsTotal = "storymap_moderation_transitions_total"
	MetricCompensationFailuresTotal  = "storymap_compensation_failures_total"
	MetricSlugCollisionsTotal        = "storymap_slug_collisions_total"
	MetricJobsTotal                  = "storymap_jobs_total"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics is safe for concurrent use. A nil *Metrics discards every sample,
// which keeps unit tests free of registry plumbing.
type Metrics struct {
	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDuration   *prometheus.HistogramVec
	storiesSubmitted      prometheus.Counter
	moderationTransitions *prometheus.CounterVec
	compensationFailures  prometheus.Counter
	slugCollisions        prometheus.Counter
	jobsTotal             *prometheus.CounterVec
}

// NewMetrics builds unregistered collectors; call Register.
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricHTTPRequestsTotal,
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricHTTPRequestDuration,
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0},
			},
			[]string{"method", "path", "status"},
		),
		storiesSubmitted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricStoriesSubmittedTotal,
				Help: "Total number of stories accepted into the moderation queue",
			},
		),
		moderationTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricModerationTransitionsTotal,
				Help: "Total number of applied moderation transitions by target status",
			},
			[]string{"to"},
		),
		compensationFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricCompensationFailuresTotal,
				Help: "Total number of story compensations that failed and were deferred to the worker",
			},
		),
		slugCollisions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricSlugCollisionsTotal,
				Help: "Total number of taken slug candidates probed while creating places",
			},
		),
		jobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricJobsTotal,
				Help: "Total number of background job executions by task type and status",
			},
			[]string{"task_type", "status"},
		),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.storiesSubmitted,
		m.moderationTransitions,
		m.compensationFailures,
		m.slugCollisions,
		m.jobsTotal,
	}
}

func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

func (m *Metrics) IncStoriesSubmitted() {
	if m == nil {
		return
	}
	m.storiesSubmitted.Inc()
}

func (m *Metrics) IncModerationTransition(to string) {
	if m == nil {
		return
	}
	m.moderationTransitions.WithLabelValues(to).Inc()
}

func (m *Metrics) IncCompensationFailures() {
	if m == nil {
		return
	}
	m.compensationFailures.Inc()
}

func (m *Metrics) AddSlugCollisions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.slugCollisions.Add(float64(n))
}

func (m *Metrics) IncJob(taskType, status string) {
	if m == nil {
		return
	}
	m.jobsTotal.WithLabelValues(taskType, status).Inc()
}

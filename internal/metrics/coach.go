package metrics

import (
	"github.com/alexanderramin/repcoach/internal/coach"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	coachRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repcoach_coach_requests_total",
		Help: "Coach chat requests by outcome",
	}, []string{"outcome"}) // outcome=success|error

	coachRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "repcoach_coach_request_duration_seconds",
		Help:    "Coach chat request latency",
		Buckets: prometheus.DefBuckets,
	})
)

// CoachObserver records coach calls as Prometheus metrics.
type CoachObserver struct{}

func (CoachObserver) OnCallComplete(ev coach.CallEvent) {
	outcome := "success"
	if !ev.Success {
		outcome = "error"
	}
	coachRequestsTotal.WithLabelValues(outcome).Inc()
	coachRequestDuration.Observe(float64(ev.LatencyMs) / 1000)
}

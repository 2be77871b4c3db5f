package metrics

import (
	"github.com/alexanderramin/repcoach/internal/tracker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repcoach_session_events_total",
		Help: "Tracker events by kind",
	}, []string{"kind"})

	sessionsCompletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repcoach_sessions_completed_total",
		Help: "Completed sessions by persistence outcome",
	}, []string{"outcome"}) // outcome=saved|failed

	sessionObservedReps = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "repcoach_session_observed_reps",
		Help: "Rep count last reported by the tracking service",
	})

	sessionDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "repcoach_session_duration_seconds",
		Help:    "Elapsed time of sessions that ended, completed or stopped",
		Buckets: []float64{15, 30, 60, 120, 300, 600, 1200},
	})

	caloriesBurnedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "repcoach_calories_burned_total",
		Help: "Calories recorded for completed sessions",
	})
)

// TrackerObserver records tracker events as Prometheus metrics.
type TrackerObserver struct{}

func (TrackerObserver) OnEvent(ev tracker.Event) {
	sessionEventsTotal.WithLabelValues(string(ev.Kind)).Inc()
	switch ev.Kind {
	case tracker.EventStarted, tracker.EventRepsChanged:
		sessionObservedReps.Set(float64(ev.Snapshot.ObservedReps))
	case tracker.EventCompleted:
		outcome := "saved"
		if !ev.Saved {
			outcome = "failed"
		}
		sessionsCompletedTotal.WithLabelValues(outcome).Inc()
		if ev.Record != nil {
			sessionDurationSeconds.Observe(float64(ev.Record.DurationSec))
			caloriesBurnedTotal.Add(float64(ev.Record.Calories))
		}
	case tracker.EventStopped:
		sessionDurationSeconds.Observe(float64(ev.Progress.ElapsedSeconds))
	}
}

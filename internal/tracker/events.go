package tracker

import (
	"time"

	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/alexanderramin/repcoach/internal/log"
	"github.com/rs/zerolog"
)

type EventKind string

const (
	EventStarted     EventKind = "started"
	EventStartFailed EventKind = "start_failed"
	EventRepsChanged EventKind = "reps_changed"
	EventPollFailed  EventKind = "poll_failed"
	EventCompleted   EventKind = "completed"
	EventStopped     EventKind = "stopped"
)

// Event is a discrete notification about the session.
type Event struct {
	Kind     EventKind
	At       time.Time
	Snapshot Snapshot

	// Record and Saved are set on EventCompleted.
	Record *domain.ExerciseRecord
	Saved  bool

	// Progress is set on EventStopped.
	Progress Progress

	// Err carries the failure for start_failed, poll_failed, a completed
	// session whose record was not saved, and a stop forced by poll failures.
	Err error

	// ConsecutiveFailures is set on EventPollFailed.
	ConsecutiveFailures int
}

// Observer receives every event the tracker emits, synchronously.
type Observer interface {
	OnEvent(Event)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnEvent(Event) {}

// Observers fans events out to several observers.
type Observers []Observer

func (os Observers) OnEvent(ev Event) {
	for _, o := range os {
		if o != nil {
			o.OnEvent(ev)
		}
	}
}

// LogObserver writes tracker events to a zerolog logger.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates an Observer logging under the tracker component.
func NewLogObserver() *LogObserver {
	return &LogObserver{logger: log.WithComponent("tracker")}
}

func (o *LogObserver) OnEvent(ev Event) {
	var e *zerolog.Event
	switch ev.Kind {
	case EventStartFailed, EventPollFailed:
		e = o.logger.Warn()
	case EventRepsChanged:
		e = o.logger.Debug()
	case EventCompleted:
		if ev.Err != nil {
			e = o.logger.Error()
		} else {
			e = o.logger.Info()
		}
	default:
		e = o.logger.Info()
	}

	e = e.Str(log.FieldEvent, string(ev.Kind)).
		Uint64(log.FieldAttempt, ev.Snapshot.Attempt).
		Str(log.FieldNewState, string(ev.Snapshot.Phase)).
		Int(log.FieldReps, ev.Snapshot.ObservedReps).
		Int(log.FieldAssigned, ev.Snapshot.AssignedReps).
		Int(log.FieldElapsed, ev.Snapshot.ElapsedSeconds)
	if ev.Record != nil {
		e = e.Str(log.FieldRecordID, ev.Record.ID).Bool("saved", ev.Saved)
	}
	if ev.ConsecutiveFailures > 0 {
		e = e.Int("consecutive_failures", ev.ConsecutiveFailures)
	}
	if ev.Err != nil {
		e = e.Err(ev.Err)
	}
	e.Msg("session_event")
}

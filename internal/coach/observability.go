package coach

import (
	"github.com/alexanderramin/repcoach/internal/log"
	"github.com/rs/zerolog"
)

// CallEvent records metadata about a single coach round trip.
type CallEvent struct {
	Task      TaskType
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about coach calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a zerolog logger.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates an Observer logging under the coach component.
func NewLogObserver() *LogObserver {
	return &LogObserver{logger: log.WithComponent("coach")}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	e := o.logger.Info()
	if !event.Success {
		e = o.logger.Warn().Str("error_code", event.ErrorCode)
	}
	e.Str("task", string(event.Task)).
		Int64(log.FieldDurationMs, event.LatencyMs).
		Int("attempts", event.Attempts).
		Bool("success", event.Success).
		Msg("coach_call")
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// Observers fans events out to several observers.
type Observers []Observer

func (os Observers) OnCallComplete(event CallEvent) {
	for _, o := range os {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}

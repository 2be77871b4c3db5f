package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/repcoach/internal/tracker"
)

// FormatStartFailure explains why a session could not start.
func FormatStartFailure(err error) string {
	hint := ""
	switch {
	case errors.Is(err, tracker.ErrServiceUnavailable):
		hint = "Is the tracking service running? Check tracker.url in your config."
	case errors.Is(err, tracker.ErrResetFailed):
		hint = "The tracking service could not reset its counter."
	case errors.Is(err, tracker.ErrStatusQueryFailed):
		hint = "The tracking service did not report its status."
	}
	out := StyleRed.Render("✖ Could not start session: ") + err.Error() + "\n"
	if hint != "" {
		out += Dim(hint) + "\n"
	}
	return out
}

// FormatOutcome summarises how a session ended.
func FormatOutcome(o tracker.Outcome, err error) string {
	var b strings.Builder
	switch o.Phase {
	case tracker.PhaseCompleted:
		b.WriteString(StyleGreen.Render("✔ Workout complete!"))
		fmt.Fprintf(&b, " %d reps in %s", o.Progress.Reps, FormatDuration(o.Progress.ElapsedSeconds))
		if o.Record != nil {
			fmt.Fprintf(&b, " · %d cal", o.Record.Calories)
		}
		b.WriteString("\n")
		if o.Saved {
			b.WriteString(Dim("Saved to your history."))
		} else {
			b.WriteString(StyleRed.Render("Not saved: "))
			if err != nil {
				b.WriteString(err.Error())
			} else {
				b.WriteString("unknown error")
			}
		}
		b.WriteString("\n")
	case tracker.PhaseStopped:
		b.WriteString(StyleYellow.Render("■ Session stopped."))
		fmt.Fprintf(&b, " %d of %d reps in %s, %d to go. Nothing was saved.\n",
			o.Progress.Reps, o.Progress.Assigned,
			FormatDuration(o.Progress.ElapsedSeconds), o.Progress.Remaining())
	default:
		b.WriteString(Dim("No session ran."))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatEvent renders one tracker event as a plain progress line. Events
// without a useful line return "".
func FormatEvent(ev tracker.Event) string {
	s := ev.Snapshot
	switch ev.Kind {
	case tracker.EventStarted:
		return fmt.Sprintf("%s go! target %d reps\n", PhasePill(tracker.PhaseRunning), s.AssignedReps)
	case tracker.EventRepsChanged:
		return fmt.Sprintf("%s %s\n", FormatClock(s.ElapsedSeconds), RenderRepBar(s.ObservedReps, s.AssignedReps, 20))
	case tracker.EventPollFailed:
		return Dim(fmt.Sprintf("%s status poll failed (%d in a row): %v",
			FormatClock(s.ElapsedSeconds), ev.ConsecutiveFailures, ev.Err)) + "\n"
	case tracker.EventStopped:
		if ev.Err != nil {
			return StyleRed.Render("Lost contact with the tracking service: ") + ev.Err.Error() + "\n"
		}
	}
	return ""
}

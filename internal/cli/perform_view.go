package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/repcoach/internal/cli/formatter"
	"github.com/alexanderramin/repcoach/internal/tracker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const sessionRefresh = 250 * time.Millisecond

type sessionKeyMap struct {
	Toggle key.Binding
	Quit   key.Binding
}

var sessionKeys = sessionKeyMap{
	Toggle: key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "start/stop")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type (
	sessionTickMsg  struct{}
	sessionEventMsg tracker.Event
	closedMsg       struct{}
	startDoneMsg    struct{ err error }
	stopDoneMsg     struct {
		outcome tracker.Outcome
		err     error
	}
)

// sessionModel is the live view of one tracked exercise session.
type sessionModel struct {
	ctx context.Context
	tr  *tracker.Tracker
	bar progress.Model

	snap    tracker.Snapshot
	busy    bool
	closing bool
	status  string

	outcome    *tracker.Outcome
	outcomeErr error
}

func newSessionModel(ctx context.Context, tr *tracker.Tracker) *sessionModel {
	bar := progress.New(
		progress.WithGradient(string(formatter.ColorYellow), string(formatter.ColorGreen)),
		progress.WithWidth(40),
	)
	return &sessionModel{
		ctx:    ctx,
		tr:     tr,
		bar:    bar,
		snap:   tr.Snapshot(),
		status: "Press s to start.",
	}
}

func (m *sessionModel) Init() tea.Cmd {
	return tea.Batch(sessionTick(), waitForEvent(m.tr.Events()))
}

func sessionTick() tea.Cmd {
	return tea.Tick(sessionRefresh, func(time.Time) tea.Msg { return sessionTickMsg{} })
}

func waitForEvent(events <-chan tracker.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return sessionEventMsg(ev)
	}
}

func (m *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-4, 10), 60)
		return m, nil

	case tea.KeyMsg:
		if m.closing {
			return m, nil
		}
		switch {
		case key.Matches(msg, sessionKeys.Quit):
			m.closing = true
			m.status = "Closing..."
			if m.tr.Snapshot().Phase == tracker.PhaseCompleted && m.outcome == nil {
				m.status = "Saving your workout..."
			}
			return m, closeTracker(m.tr)
		case key.Matches(msg, sessionKeys.Toggle):
			return m, m.toggle()
		}
		return m, nil

	case closedMsg:
		m.snap = m.tr.Snapshot()
		return m, tea.Quit

	case sessionTickMsg:
		m.snap = m.tr.Snapshot()
		return m, sessionTick()

	case sessionEventMsg:
		m.handleEvent(tracker.Event(msg))
		return m, waitForEvent(m.tr.Events())

	case startDoneMsg:
		m.busy = false
		m.snap = m.tr.Snapshot()
		switch {
		case msg.err == nil:
			m.status = "Tracking. Press s to stop."
		case errors.Is(msg.err, tracker.ErrStartAborted), errors.Is(msg.err, context.Canceled):
			m.status = "Start cancelled."
		default:
			m.status = strings.TrimRight(formatter.FormatStartFailure(msg.err), "\n")
		}
		return m, nil

	case stopDoneMsg:
		m.busy = false
		m.snap = m.tr.Snapshot()
		if !errors.Is(msg.err, tracker.ErrNotRunning) {
			m.setOutcome(msg.outcome, msg.err)
		}
		return m, nil
	}
	return m, nil
}

func (m *sessionModel) toggle() tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true
	if m.tr.Snapshot().Phase == tracker.PhaseRunning {
		m.status = "Stopping..."
		return func() tea.Msg {
			out, err := m.tr.Stop(m.ctx)
			return stopDoneMsg{outcome: out, err: err}
		}
	}
	m.outcome, m.outcomeErr = nil, nil
	m.status = "Connecting to the tracking service..."
	return func() tea.Msg {
		return startDoneMsg{err: m.tr.Start(m.ctx)}
	}
}

// closeTracker waits for the tracker off the update loop, since a finishing
// session may still be saving its record.
func closeTracker(tr *tracker.Tracker) tea.Cmd {
	return func() tea.Msg {
		tr.Close()
		return closedMsg{}
	}
}

// drainPending applies events the view did not get to before it quit, such
// as a completion whose save finished during Close.
func (m *sessionModel) drainPending() {
	for {
		select {
		case ev := <-m.tr.Events():
			m.handleEvent(ev)
		default:
			return
		}
	}
}

func (m *sessionModel) handleEvent(ev tracker.Event) {
	if ev.Snapshot.Attempt != m.tr.Snapshot().Attempt {
		return
	}
	m.snap = ev.Snapshot
	switch ev.Kind {
	case tracker.EventPollFailed:
		m.status = fmt.Sprintf("Lost the tracking service (%d in a row), retrying...", ev.ConsecutiveFailures)
	case tracker.EventRepsChanged:
		m.status = "Tracking. Press s to stop."
	case tracker.EventCompleted:
		m.setOutcome(tracker.Outcome{
			Phase:    tracker.PhaseCompleted,
			Progress: progressOf(ev.Snapshot),
			Record:   ev.Record,
			Saved:    ev.Saved,
		}, ev.Err)
	case tracker.EventStopped:
		m.setOutcome(tracker.Outcome{Phase: tracker.PhaseStopped, Progress: ev.Progress}, ev.Err)
	}
}

func (m *sessionModel) setOutcome(out tracker.Outcome, err error) {
	if m.outcome != nil {
		return
	}
	m.outcome, m.outcomeErr = &out, err
	m.status = "Press s to go again or q to quit."
}

func (m *sessionModel) View() string {
	cfg := m.tr.Config()
	var b strings.Builder

	b.WriteString(formatter.Header(cfg.ExerciseName))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s\n\n", formatter.PhasePill(m.snap.Phase))
	fmt.Fprintf(&b, "%s %s\n", formatter.Dim("Reps:"),
		formatter.Bold(fmt.Sprintf("%d / %d", m.snap.ObservedReps, m.snap.AssignedReps)))
	fmt.Fprintf(&b, "%s %s\n\n", formatter.Dim("Time:"), formatter.FormatClock(m.snap.ElapsedSeconds))

	frac := 0.0
	if m.snap.AssignedReps > 0 {
		frac = min(float64(m.snap.ObservedReps)/float64(m.snap.AssignedReps), 1)
	}
	b.WriteString(m.bar.ViewAs(frac))
	b.WriteString("\n\n")

	if feed := m.tr.FeedURL(); feed != "" {
		fmt.Fprintf(&b, "%s %s\n\n", formatter.Dim("Live feed:"), feed)
	}
	if m.outcome != nil {
		b.WriteString(formatter.FormatOutcome(*m.outcome, m.outcomeErr))
		b.WriteString("\n")
	}
	b.WriteString(m.status)
	b.WriteString("\n\n")
	b.WriteString(formatter.Dim(helpLine(sessionKeys.Toggle, sessionKeys.Quit)))
	return b.String()
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

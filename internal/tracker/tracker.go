// Package tracker runs one guided exercise session against a remote pose
// tracking service. The service counts reps from the camera; the tracker
// mirrors its count, keeps a local elapsed-seconds clock, and saves exactly
// one history record when the assigned reps are reached.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/alexanderramin/repcoach/internal/posetrack"
)

// TrackingService is the remote rep counter.
type TrackingService interface {
	Probe(ctx context.Context) error
	Reset(ctx context.Context) error
	Status(ctx context.Context) (posetrack.Status, error)
}

// FeedSource is implemented by tracking services that expose a live video
// stream.
type FeedSource interface {
	FeedURL() string
}

// Recorder persists a completed exercise record.
type Recorder interface {
	RecordExercise(ctx context.Context, rec *domain.ExerciseRecord) error
}

// attempt is the state owned by one Start call. A new attempt is created on
// every Start and is never reused.
type attempt struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
	saved  atomic.Bool

	pollFailures int // poll goroutine only

	finalized chan struct{}
	outcome   Outcome
	finalErr  error
}

// Tracker drives a single exercise session.
type Tracker struct {
	cfg    SessionConfig
	svc    TrackingService
	rec    Recorder
	opts   Options
	events chan Event

	mu      sync.Mutex
	phase   Phase
	reps    int
	elapsed int
	cur     *attempt
	nextID  uint64
	closed  bool
	wg      sync.WaitGroup
}

// New creates a Tracker in the Idle phase.
func New(cfg SessionConfig, svc TrackingService, rec Recorder, opts ...Option) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: tracking service is required", ErrInvalidConfig)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: recorder is required", ErrInvalidConfig)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.normalize()
	return &Tracker{
		cfg:    cfg,
		svc:    svc,
		rec:    rec,
		opts:   o,
		events: make(chan Event, o.EventBuffer),
		phase:  PhaseIdle,
	}, nil
}

// Config returns the session config.
func (t *Tracker) Config() SessionConfig { return t.cfg }

// Events returns the event stream. Events are dropped when the buffer is
// full; Snapshot is always authoritative.
func (t *Tracker) Events() <-chan Event { return t.events }

// FeedURL returns the live video address, or "" when the service has none.
func (t *Tracker) FeedURL() string {
	if fs, ok := t.svc.(FeedSource); ok {
		return fs.FeedURL()
	}
	return ""
}

// Snapshot returns a copy of the current session state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() Snapshot {
	s := Snapshot{
		Phase:          t.phase,
		ObservedReps:   t.reps,
		AssignedReps:   t.cfg.AssignedReps,
		ElapsedSeconds: t.elapsed,
	}
	if t.cur != nil {
		s.Attempt = t.cur.id
		s.Saved = t.cur.saved.Load()
	}
	return s
}

// Start prepares the remote service and begins tracking. It cancels whatever
// a previous attempt left behind, probes the service, resets its counter,
// adopts the counter it reports, waits for the settle delay, and then enters
// Running with the timer and reconciliation loops active. Any failure leaves
// the tracker Idle.
//
// ctx bounds the setup steps only; the running loops live until Stop,
// completion, or Close.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	if t.phase == PhaseRunning {
		t.mu.Unlock()
		return ErrAlreadyRunning
	}
	if t.cur != nil {
		t.cur.cancel()
	}
	t.nextID++
	actx, cancel := context.WithCancel(context.Background())
	a := &attempt{id: t.nextID, ctx: actx, cancel: cancel, finalized: make(chan struct{})}
	t.cur = a
	t.phase = PhaseIdle
	t.reps = 0
	t.elapsed = 0
	t.mu.Unlock()

	setupCtx, setupCancel := context.WithCancel(ctx)
	defer setupCancel()
	stopAfter := context.AfterFunc(actx, setupCancel)
	defer stopAfter()

	if err := t.step(setupCtx, t.opts.HealthTimeout, t.svc.Probe); err != nil {
		return t.failStart(a, setupCtx, ErrServiceUnavailable, err)
	}
	if err := t.step(setupCtx, t.opts.ResetTimeout, t.svc.Reset); err != nil {
		return t.failStart(a, setupCtx, ErrResetFailed, err)
	}

	var st posetrack.Status
	err := t.step(setupCtx, t.opts.StatusTimeout, func(c context.Context) error {
		var err error
		st, err = t.svc.Status(c)
		return err
	})
	if err != nil {
		return t.failStart(a, setupCtx, ErrStatusQueryFailed, err)
	}
	t.mu.Lock()
	if t.cur == a {
		t.reps = st.Reps
	}
	t.mu.Unlock()

	if t.opts.SettleDelay > 0 {
		timer := time.NewTimer(t.opts.SettleDelay)
		select {
		case <-timer.C:
		case <-setupCtx.Done():
			timer.Stop()
			return t.failStart(a, setupCtx, ErrStartAborted, setupCtx.Err())
		}
	}

	t.mu.Lock()
	if t.closed || t.cur != a || actx.Err() != nil {
		t.mu.Unlock()
		return t.failStart(a, setupCtx, ErrStartAborted, context.Canceled)
	}
	t.phase = PhaseRunning
	t.wg.Add(2)
	go t.runTimer(a)
	go t.runPoll(a)
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.emit(Event{Kind: EventStarted, Snapshot: snap})
	return nil
}

func (t *Tracker) step(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(c)
}

// failStart returns the tracker to Idle for attempt a. When the setup
// context was cancelled the error reports an aborted start rather than a
// service failure.
func (t *Tracker) failStart(a *attempt, setupCtx context.Context, kind error, cause error) error {
	err := fmt.Errorf("%w: %w", kind, cause)
	if kind != ErrStartAborted && setupCtx.Err() != nil {
		err = fmt.Errorf("%w: %w", ErrStartAborted, setupCtx.Err())
	}

	t.mu.Lock()
	if t.cur == a {
		t.phase = PhaseIdle
		t.reps = 0
		t.elapsed = 0
	}
	a.cancel()
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.emit(Event{Kind: EventStartFailed, Snapshot: snap, Err: err})
	return err
}

// liveLocked reports whether attempt a still owns a running session.
func (t *Tracker) liveLocked(a *attempt) bool {
	return t.cur == a && t.phase == PhaseRunning && a.ctx.Err() == nil
}

func (t *Tracker) runTimer(a *attempt) {
	defer t.wg.Done()
	ticker := time.NewTicker(t.opts.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			if !t.liveLocked(a) {
				t.mu.Unlock()
				return
			}
			t.elapsed++
			t.mu.Unlock()
		}
	}
}

// runPoll reconciles the local count with the service. time.Ticker drops
// ticks for a slow receiver, so polls never overlap.
func (t *Tracker) runPoll(a *attempt) {
	defer t.wg.Done()
	ticker := time.NewTicker(t.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			if !t.reconcile(a) {
				return
			}
		}
	}
}

func (t *Tracker) reconcile(a *attempt) bool {
	c, cancel := context.WithTimeout(a.ctx, t.opts.StatusTimeout)
	st, err := t.svc.Status(c)
	cancel()
	if err != nil {
		if a.ctx.Err() != nil {
			return false
		}
		a.pollFailures++
		perr := fmt.Errorf("%w: %w", ErrStatusQueryFailed, err)
		t.emit(Event{Kind: EventPollFailed, Snapshot: t.Snapshot(), Err: perr, ConsecutiveFailures: a.pollFailures})
		if t.opts.MaxPollFailures > 0 && a.pollFailures >= t.opts.MaxPollFailures {
			t.abandon(a, perr)
			return false
		}
		return true
	}
	a.pollFailures = 0

	t.mu.Lock()
	if !t.liveLocked(a) {
		t.mu.Unlock()
		return false
	}
	changed := t.reps != st.Reps
	t.reps = st.Reps
	reps := t.reps
	snap := t.snapshotLocked()
	t.mu.Unlock()

	if changed {
		t.emit(Event{Kind: EventRepsChanged, Snapshot: snap})
	}
	if reps >= t.cfg.AssignedReps {
		_, _ = t.finalize(context.Background(), a, reps)
		return false
	}
	return true
}

// abandon stops a session whose service stopped answering.
func (t *Tracker) abandon(a *attempt, cause error) {
	t.mu.Lock()
	if !t.liveLocked(a) {
		t.mu.Unlock()
		return
	}
	a.cancel()
	t.phase = PhaseStopped
	progress := t.progressLocked()
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.emit(Event{Kind: EventStopped, Snapshot: snap, Progress: progress, Err: cause})
}

func (t *Tracker) progressLocked() Progress {
	return Progress{Reps: t.reps, Assigned: t.cfg.AssignedReps, ElapsedSeconds: t.elapsed}
}

// Stop ends a running session. With the target met the session completes and
// its record is saved; otherwise it stops with partial progress and nothing
// is saved. Calling Stop when not running returns ErrNotRunning and changes
// nothing.
func (t *Tracker) Stop(ctx context.Context) (Outcome, error) {
	t.mu.Lock()
	if t.phase != PhaseRunning || t.cur == nil {
		out := Outcome{Phase: t.phase, Progress: t.progressLocked()}
		t.mu.Unlock()
		return out, ErrNotRunning
	}
	a := t.cur
	a.cancel()
	reps := t.reps
	if reps >= t.cfg.AssignedReps {
		t.mu.Unlock()
		return t.finalize(ctx, a, reps)
	}
	t.phase = PhaseStopped
	progress := t.progressLocked()
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.emit(Event{Kind: EventStopped, Snapshot: snap, Progress: progress})
	return Outcome{Phase: PhaseStopped, Progress: progress}, nil
}

// finalize completes the session at most once per attempt. Below the target
// it does nothing. The caller that loses the race waits for the winner and
// returns the same outcome.
func (t *Tracker) finalize(ctx context.Context, a *attempt, reps int) (Outcome, error) {
	if reps < t.cfg.AssignedReps {
		return Outcome{Phase: t.Snapshot().Phase}, nil
	}
	if !a.saved.CompareAndSwap(false, true) {
		select {
		case <-a.finalized:
			return a.outcome, a.finalErr
		case <-ctx.Done():
			return Outcome{Phase: PhaseCompleted}, ctx.Err()
		}
	}
	a.cancel()

	// The event describes attempt a even if a restart replaces it while the
	// record is being saved.
	t.mu.Lock()
	if t.cur == a {
		t.phase = PhaseCompleted
		t.reps = reps
	}
	progress := Progress{Reps: reps, Assigned: t.cfg.AssignedReps, ElapsedSeconds: t.elapsed}
	snap := Snapshot{
		Attempt:        a.id,
		Phase:          PhaseCompleted,
		ObservedReps:   reps,
		AssignedReps:   t.cfg.AssignedReps,
		ElapsedSeconds: progress.ElapsedSeconds,
		Saved:          true,
	}
	t.mu.Unlock()

	rec := BuildRecord(t.cfg, reps, progress.ElapsedSeconds, t.opts.Now())
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.opts.PersistTimeout)
	err := t.rec.RecordExercise(pctx, rec)
	cancel()

	out := Outcome{Phase: PhaseCompleted, Progress: progress, Record: rec, Saved: err == nil}
	var ferr error
	if err != nil {
		ferr = fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	a.outcome, a.finalErr = out, ferr
	close(a.finalized)

	t.emit(Event{Kind: EventCompleted, Snapshot: snap, Record: rec, Saved: err == nil, Err: ferr})
	return out, ferr
}

// Close cancels any in-flight start and both loops, then waits for them to
// exit. A running session ends Stopped without saving. Close is safe to call
// more than once.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	if t.cur != nil {
		t.cur.cancel()
	}
	if t.phase == PhaseRunning {
		t.phase = PhaseStopped
	}
	t.mu.Unlock()
	t.wg.Wait()
}

func (t *Tracker) emit(ev Event) {
	if ev.At.IsZero() {
		ev.At = t.opts.Now()
	}
	t.opts.Observer.OnEvent(ev)
	select {
	case t.events <- ev:
	default:
	}
}

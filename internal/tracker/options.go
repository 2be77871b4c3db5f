package tracker

import (
	"time"

	"github.com/alexanderramin/repcoach/internal/posetrack"
)

// Options tunes the setup timeouts and the two periodic loops.
type Options struct {
	HealthTimeout  time.Duration
	ResetTimeout   time.Duration
	StatusTimeout  time.Duration
	SettleDelay    time.Duration
	PollInterval   time.Duration
	TickInterval   time.Duration // one elapsed second is counted per tick
	PersistTimeout time.Duration

	// MaxPollFailures stops the session after that many consecutive failed
	// polls. Zero never gives up.
	MaxPollFailures int

	EventBuffer int
	Observer    Observer
	Now         func() time.Time
}

// DefaultOptions returns the timings used by the web client this replaces.
func DefaultOptions() Options {
	return Options{
		HealthTimeout:  5 * time.Second,
		ResetTimeout:   5 * time.Second,
		StatusTimeout:  5 * time.Second,
		SettleDelay:    300 * time.Millisecond,
		PollInterval:   1500 * time.Millisecond,
		TickInterval:   time.Second,
		PersistTimeout: 10 * time.Second,
		EventBuffer:    64,
		Now:            time.Now,
	}
}

type Option func(*Options)

func WithHealthTimeout(d time.Duration) Option { return func(o *Options) { o.HealthTimeout = d } }
func WithResetTimeout(d time.Duration) Option  { return func(o *Options) { o.ResetTimeout = d } }
func WithStatusTimeout(d time.Duration) Option { return func(o *Options) { o.StatusTimeout = d } }
func WithSettleDelay(d time.Duration) Option   { return func(o *Options) { o.SettleDelay = d } }
func WithPollInterval(d time.Duration) Option  { return func(o *Options) { o.PollInterval = d } }
func WithTickInterval(d time.Duration) Option  { return func(o *Options) { o.TickInterval = d } }
func WithMaxPollFailures(n int) Option         { return func(o *Options) { o.MaxPollFailures = n } }
func WithObserver(obs Observer) Option         { return func(o *Options) { o.Observer = obs } }
func WithClock(now func() time.Time) Option    { return func(o *Options) { o.Now = now } }

// FromConfig maps tracker settings from the backend config onto options.
func FromConfig(cfg posetrack.Config) []Option {
	opts := []Option{
		WithSettleDelay(cfg.SettleDelay()),
		WithMaxPollFailures(cfg.MaxPollFailures),
	}
	if d := cfg.HealthTimeout(); d > 0 {
		opts = append(opts, WithHealthTimeout(d))
	}
	if d := cfg.ResetTimeout(); d > 0 {
		opts = append(opts, WithResetTimeout(d))
	}
	if d := cfg.StatusTimeout(); d > 0 {
		opts = append(opts, WithStatusTimeout(d))
	}
	if d := cfg.PollInterval(); d > 0 {
		opts = append(opts, WithPollInterval(d))
	}
	return opts
}

func (o *Options) normalize() {
	def := DefaultOptions()
	if o.HealthTimeout <= 0 {
		o.HealthTimeout = def.HealthTimeout
	}
	if o.ResetTimeout <= 0 {
		o.ResetTimeout = def.ResetTimeout
	}
	if o.StatusTimeout <= 0 {
		o.StatusTimeout = def.StatusTimeout
	}
	if o.SettleDelay < 0 {
		o.SettleDelay = 0
	}
	if o.PollInterval <= 0 {
		o.PollInterval = def.PollInterval
	}
	if o.TickInterval <= 0 {
		o.TickInterval = def.TickInterval
	}
	if o.PersistTimeout <= 0 {
		o.PersistTimeout = def.PersistTimeout
	}
	if o.MaxPollFailures < 0 {
		o.MaxPollFailures = 0
	}
	if o.EventBuffer <= 0 {
		o.EventBuffer = def.EventBuffer
	}
	if o.Observer == nil {
		o.Observer = NoopObserver{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

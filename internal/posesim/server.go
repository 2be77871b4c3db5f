// Package posesim serves a simulated pose backend with the same HTTP surface
// as the real one. The repetition counter is driven by Advance or by an
// automatic rep cadence instead of a camera.
package posesim

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// Simulator holds the fake backend state.
type Simulator struct {
	mu         sync.Mutex
	reps       int
	healthy    bool
	failReset  bool
	failStatus bool
	delays     map[string]time.Duration
	calls      map[string]int
	perMinute  int
}

// New returns a healthy simulator with a zero counter.
func New() *Simulator {
	return &Simulator{
		healthy: true,
		delays:  make(map[string]time.Duration),
		calls:   make(map[string]int),
	}
}

// Handler returns the chi router exposing the backend endpoints.
func (s *Simulator) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.perMinute > 0 {
		r.Use(httprate.Limit(s.perMinute, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "60")
				respondJSON(w, map[string]string{"error": "rate_limit_exceeded"}, http.StatusTooManyRequests)
			}),
		))
	}
	r.Use(s.record)

	r.Get("/", s.handleHealth)
	r.Post("/reset", s.handleReset)
	r.Get("/exercise_status", s.handleStatus)
	r.Get("/video_feed", s.handleFeed)
	return r
}

// SetRateLimit caps requests per client IP per minute. It applies to
// handlers built after the call; zero disables the limit.
func (s *Simulator) SetRateLimit(perMinute int) {
	s.mu.Lock()
	s.perMinute = perMinute
	s.mu.Unlock()
}

// Advance adds n repetitions to the counter.
func (s *Simulator) Advance(n int) {
	s.mu.Lock()
	s.reps += n
	s.mu.Unlock()
}

// SetReps overwrites the counter.
func (s *Simulator) SetReps(n int) {
	s.mu.Lock()
	s.reps = n
	s.mu.Unlock()
}

// Reps returns the current counter.
func (s *Simulator) Reps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reps
}

func (s *Simulator) SetHealthy(ok bool) {
	s.mu.Lock()
	s.healthy = ok
	s.mu.Unlock()
}

func (s *Simulator) FailReset(fail bool) {
	s.mu.Lock()
	s.failReset = fail
	s.mu.Unlock()
}

func (s *Simulator) FailStatus(fail bool) {
	s.mu.Lock()
	s.failStatus = fail
	s.mu.Unlock()
}

// SetDelay makes requests to path wait d before answering.
func (s *Simulator) SetDelay(path string, d time.Duration) {
	s.mu.Lock()
	s.delays[path] = d
	s.mu.Unlock()
}

// Calls returns how many requests reached path.
func (s *Simulator) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// Run advances the counter by one every interval until ctx is done.
func (s *Simulator) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Advance(1)
		}
	}
}

func (s *Simulator) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.URL.Path]++
		delay := s.delays[r.URL.Path]
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Simulator) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	healthy := s.healthy
	s.mu.Unlock()

	if !healthy {
		respondJSON(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Simulator) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failReset {
		respondJSON(w, map[string]string{"error": "reset rejected"}, http.StatusInternalServerError)
		return
	}
	s.reps = 0
	respondJSON(w, map[string]string{"status": "reset"}, http.StatusOK)
}

func (s *Simulator) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fail := s.failStatus
	reps := s.reps
	s.mu.Unlock()

	if fail {
		respondJSON(w, map[string]string{"error": "status unavailable"}, http.StatusInternalServerError)
		return
	}
	stage := "down"
	if reps%2 == 1 {
		stage = "up"
	}
	respondJSON(w, map[string]any{"reps": reps, "stage": stage}, http.StatusOK)
}

func (s *Simulator) handleFeed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("simulated pose feed: no camera attached\n"))
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

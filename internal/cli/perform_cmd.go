package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/repcoach/internal/cli/formatter"
	"github.com/alexanderramin/repcoach/internal/log"
	"github.com/alexanderramin/repcoach/internal/metrics"
	"github.com/alexanderramin/repcoach/internal/tracker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPerformCmd(app *App) *cobra.Command {
	var (
		reps        int
		plain       bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "perform EXERCISE",
		Short: "Run a live, camera-tracked exercise session",
		Long: "Run a live exercise session. EXERCISE is a catalog id or name " +
			"(see `repcoach workout list`). The session completes once the tracking " +
			"service counts the assigned reps; completed sessions are saved to history.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reps < 0 {
				return fmt.Errorf("--reps must be positive")
			}
			cfg, err := sessionConfigFor(app, args[0], reps)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				go serveMetrics(ctx, metricsAddr)
			}

			opts := append(tracker.FromConfig(app.TrackerConfig),
				tracker.WithObserver(tracker.Observers{tracker.NewLogObserver(), metrics.TrackerObserver{}}))
			tr, err := tracker.New(cfg, app.Tracking, app.Exercises, opts...)
			if err != nil {
				return err
			}
			defer tr.Close()

			if plain || !app.interactive() {
				return runPlainSession(ctx, cmd.OutOrStdout(), tr)
			}
			final, err := tea.NewProgram(newSessionModel(ctx, tr), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			if m, ok := final.(*sessionModel); ok {
				m.drainPending()
				if m.outcome != nil {
					fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOutcome(*m.outcome, m.outcomeErr))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&reps, "reps", 0, "Assigned repetitions (defaults to the exercise's default)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print progress lines instead of the live view")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	return cmd
}

func sessionConfigFor(app *App, ref string, reps int) (tracker.SessionConfig, error) {
	ex, err := app.Workouts.Find(ref)
	if err != nil {
		return tracker.SessionConfig{}, err
	}
	if reps == 0 {
		reps = ex.DefaultReps
	}
	return tracker.SessionConfig{
		UserID:            app.User,
		ExerciseID:        ex.ID,
		ExerciseName:      ex.Name,
		AssignedReps:      reps,
		CaloriesPerMinute: ex.CaloriesPerMinute,
	}, nil
}

func serveMetrics(ctx context.Context, addr string) {
	logger := log.WithComponent("metrics")
	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := metrics.Serve(ctx, addr); err != nil {
		logger.Error().Err(err).Str("addr", addr).Msg("metrics server failed")
	}
}

// runPlainSession starts the session and prints a line per event until it
// completes or stops. Cancelling ctx stops the session.
func runPlainSession(ctx context.Context, w io.Writer, tr *tracker.Tracker) error {
	cfg := tr.Config()
	fmt.Fprintf(w, "%s %s\n", formatter.Bold(cfg.ExerciseName), formatter.Dim(fmt.Sprintf("· target %d reps", cfg.AssignedReps)))
	if feed := tr.FeedURL(); feed != "" {
		fmt.Fprintf(w, "%s %s\n", formatter.Dim("Live feed:"), feed)
	}

	if err := tr.Start(ctx); err != nil {
		fmt.Fprint(w, formatter.FormatStartFailure(err))
		return err
	}

	done := ctx.Done()
	for {
		select {
		case ev := <-tr.Events():
			fmt.Fprint(w, formatter.FormatEvent(ev))
			switch ev.Kind {
			case tracker.EventCompleted:
				out := tracker.Outcome{Phase: tracker.PhaseCompleted, Progress: progressOf(ev.Snapshot), Record: ev.Record, Saved: ev.Saved}
				fmt.Fprint(w, formatter.FormatOutcome(out, ev.Err))
				return ev.Err
			case tracker.EventStopped:
				fmt.Fprint(w, formatter.FormatOutcome(tracker.Outcome{Phase: tracker.PhaseStopped, Progress: ev.Progress}, nil))
				if ev.Err != nil {
					return fmt.Errorf("session stopped: %w", ev.Err)
				}
				return nil
			}
		case <-done:
			done = nil
			out, err := tr.Stop(context.Background())
			if errors.Is(err, tracker.ErrNotRunning) {
				// already ending; its event is on the way
				continue
			}
			fmt.Fprint(w, formatter.FormatOutcome(out, err))
			return err
		}
	}
}

func progressOf(s tracker.Snapshot) tracker.Progress {
	return tracker.Progress{Reps: s.ObservedReps, Assigned: s.AssignedReps, ElapsedSeconds: s.ElapsedSeconds}
}

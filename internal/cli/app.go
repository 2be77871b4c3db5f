// Package cli implements the repcoach command tree and its terminal views.
package cli

import (
	"context"

	"github.com/alexanderramin/repcoach/internal/posetrack"
	"github.com/alexanderramin/repcoach/internal/service"
	"github.com/alexanderramin/repcoach/internal/tracker"
)

// App holds the services and settings used by CLI commands.
type App struct {
	User string

	Exercises service.ExerciseService
	Profiles  service.ProfileService
	Chat      service.ChatService
	Workouts  service.WorkoutService

	// Tracking is the pose backend sessions run against.
	Tracking      tracker.TrackingService
	TrackerConfig posetrack.Config

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool

	// Setup runs before every command once flags are parsed. It resolves
	// configuration and fills in the fields above. Tests leave it nil and
	// wire the App directly.
	Setup func(ctx context.Context, flags GlobalFlags) error
}

// GlobalFlags are the persistent flags of the root command.
type GlobalFlags struct {
	User       string
	DBPath     string
	ConfigPath string
	LogLevel   string
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

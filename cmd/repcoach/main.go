package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/repcoach/internal/cli"
	"github.com/alexanderramin/repcoach/internal/coach"
	"github.com/alexanderramin/repcoach/internal/config"
	"github.com/alexanderramin/repcoach/internal/db"
	"github.com/alexanderramin/repcoach/internal/log"
	"github.com/alexanderramin/repcoach/internal/metrics"
	"github.com/alexanderramin/repcoach/internal/posetrack"
	"github.com/alexanderramin/repcoach/internal/repository"
	"github.com/alexanderramin/repcoach/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		database *sql.DB
		logFile  io.Closer
	)
	defer func() {
		if database != nil {
			database.Close()
		}
		if logFile != nil {
			logFile.Close()
		}
	}()

	app := &cli.App{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	app.Setup = func(ctx context.Context, flags cli.GlobalFlags) error {
		cfgPath := flags.ConfigPath
		if cfgPath == "" {
			cfgPath = config.DefaultConfigPath()
		}
		settings, err := config.Resolve(cfgPath)
		if err != nil {
			return err
		}
		if flags.DBPath != "" {
			settings.DBPath = flags.DBPath
		}
		if flags.LogLevel != "" {
			settings.LogLevel = flags.LogLevel
		}

		out, closer, err := openLogOutput(settings.LogFile)
		if err != nil {
			return err
		}
		logFile = closer
		log.Configure(log.Config{Level: settings.LogLevel, Output: out})

		database, err = db.OpenDB(settings.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		wire(app, database, settings)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}

// wire builds repositories and services over database into app.
func wire(app *cli.App, database *sql.DB, settings config.Settings) {
	records := repository.NewSQLiteExerciseRepo(database)
	profiles := repository.NewSQLiteProfileRepo(database)
	chats := repository.NewSQLiteChatRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	useCases := service.NewLogUseCaseObserver()

	coachObservers := coach.Observers{metrics.CoachObserver{}}
	if settings.Coach.LogCalls {
		coachObservers = append(coachObservers, coach.NewLogObserver())
	}
	coachClient := coach.NewClient(settings.Coach, coachObservers)

	app.User = settings.User
	app.Exercises = service.NewExerciseService(records, profiles, useCases)
	app.Profiles = service.NewProfileService(profiles, useCases)
	app.Chat = service.NewChatService(chats, coachClient, uow, useCases)
	app.Workouts = service.NewWorkoutService(records, profiles, coachClient, useCases)
	app.Tracking = posetrack.NewClient(settings.Tracker)
	app.TrackerConfig = settings.Tracker
}

// openLogOutput returns the log destination. Views own the terminal, so logs
// go to a file unless "-" or "stderr" is configured.
func openLogOutput(path string) (io.Writer, io.Closer, error) {
	switch path {
	case "-", "stderr":
		return os.Stderr, nil, nil
	case "":
		path = filepath.Join(config.XDGDataHome(), "repcoach", "repcoach.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, f, nil
}

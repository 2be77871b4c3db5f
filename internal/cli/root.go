package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "repcoach" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var flags GlobalFlags

	root := &cobra.Command{
		Use:           "repcoach",
		Short:         "Track workouts, follow your progress, and chat with your coach",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup != nil {
				if err := app.Setup(cmd.Context(), flags); err != nil {
					return err
				}
			}
			if flags.User != "" {
				app.User = flags.User
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.User, "user", "", "Local user id (defaults to the configured user)")
	pf.StringVar(&flags.DBPath, "db", "", "Path to the SQLite database")
	pf.StringVar(&flags.ConfigPath, "config", "", "Path to config.toml")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newWorkoutCmd(app),
		newPerformCmd(app),
		newHistoryCmd(app),
		newDashboardCmd(app),
		newProfileCmd(app),
		newBMICmd(app),
		newChatCmd(app),
	)

	return root
}

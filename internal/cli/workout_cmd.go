package cli

import (
	"fmt"

	"github.com/alexanderramin/repcoach/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newWorkoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Browse suggested workouts",
	}
	cmd.AddCommand(newWorkoutListCmd(app), newWorkoutSuggestCmd(app))
	return cmd
}

func newWorkoutListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the workout catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(app.Workouts.Catalog()))
			return nil
		},
	}
}

func newWorkoutSuggestCmd(app *App) *cobra.Command {
	var goal string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask the coach to pick workouts for you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Asking your coach...")
			}
			items, err := app.Workouts.Suggest(cmd.Context(), app.User, goal)
			stop()
			if err != nil {
				return fmt.Errorf("suggesting workouts: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSuggestions(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "What you want to work on, e.g. \"core strength\"")
	return cmd
}

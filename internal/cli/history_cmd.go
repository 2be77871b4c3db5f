package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/repcoach/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show your exercise history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return fmt.Errorf("--days must not be negative")
			}
			records, err := app.Exercises.ListHistory(cmd.Context(), app.User, days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(records, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Only show the last N days (0 = all)")
	return cmd
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals, weekly progress, and recent sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dash, err := app.Exercises.Dashboard(cmd.Context(), app.User)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(dash, time.Now()))
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/repcoach/internal/cli/formatter"
	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/alexanderramin/repcoach/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "chat [MESSAGE]",
		Short: "Talk to your fitness coach",
		Long: "Send MESSAGE to the coach and print the reply. Without a message an " +
			"interactive chat opens on a terminal; otherwise recent history is printed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if msg := strings.TrimSpace(strings.Join(args, " ")); msg != "" {
				stop := func() {}
				if app.interactive() {
					stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Coach is thinking...")
				}
				reply, err := app.Chat.Send(ctx, app.User, msg)
				stop()
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatTranscript([]*domain.ChatMessage{reply}))
				return nil
			}

			history, err := app.Chat.History(ctx, app.User, limit)
			if err != nil {
				return err
			}
			if !app.interactive() {
				fmt.Fprint(out, formatter.FormatTranscript(history))
				return nil
			}
			sid, err := app.Chat.SessionID(ctx, app.User)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newChatModel(ctx, app, sid, history)).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "history", service.DefaultChatHistory, "How many past exchanges to show")
	return cmd
}

package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rapport/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <id-or-name> <command...>",
		Short: "Send a natural-language command to the assistant about a contact",
		Example: `  rapport ask ada "summarize our last meeting"
  rapport ask ada assign a task to review the proposal`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePerson(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
			}
			resp, err := app.Assistant.Process(cmd.Context(), p.ID, strings.Join(args[1:], " "))
			stop()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatResponse(resp, formatter.NewMarkdown(0, app.Plain)))
			return nil
		},
	}
}

func newInsightCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "insight <id-or-name>",
		Short: "Show a relationship overview for a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePerson(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			resp, err := app.Assistant.Insight(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatResponse(resp, formatter.NewMarkdown(0, app.Plain)))
			return nil
		},
	}
}

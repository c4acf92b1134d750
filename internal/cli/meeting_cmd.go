package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rapport/internal/cli/formatter"
	"github.com/alexanderramin/rapport/internal/contract"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/service"
	"github.com/spf13/cobra"
)

func newMeetingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meeting",
		Aliases: []string{"m"},
		Short:   "Record meetings with a contact",
	}
	cmd.AddCommand(newMeetingLogCmd(app))
	return cmd
}

func newMeetingLogCmd(app *App) *cobra.Command {
	var title, summary, sentiment, date string

	cmd := &cobra.Command{
		Use:   "log <id-or-name>",
		Short: "Log a meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := contract.OptionalDate("date", date)
			if err != nil {
				return err
			}
			p, err := resolvePerson(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Contacts.LogMeeting(cmd.Context(), p.ID, service.NewMeeting{
				Title:     title,
				Summary:   summary,
				Sentiment: domain.Sentiment(strings.ToLower(strings.TrimSpace(sentiment))),
				Date:      when,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged %s with %s on %s (%s)\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(m.Title), p.Name,
				formatter.HumanDate(m.Date), formatter.SentimentStyle(m.Sentiment).Render(string(m.Sentiment)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Meeting title")
	cmd.Flags().StringVar(&summary, "summary", "", "What was discussed")
	cmd.Flags().StringVar(&sentiment, "sentiment", "", "positive, neutral or negative (default neutral)")
	cmd.Flags().StringVar(&date, "date", "", "Meeting date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

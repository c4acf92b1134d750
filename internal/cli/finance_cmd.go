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

func newFinanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "finance",
		Aliases: []string{"f"},
		Short:   "Record money owed, paid or received",
	}
	cmd.AddCommand(newFinanceAddCmd(app))
	return cmd
}

func newFinanceAddCmd(app *App) *cobra.Command {
	var (
		in   service.NewFinance
		typ  string
		date string
	)

	cmd := &cobra.Command{
		Use:   "add <id-or-name>",
		Short: "Add a finance record",
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
			in.Type = domain.FinanceType(strings.ToLower(strings.TrimSpace(typ)))
			in.Date = when

			f, err := app.Contacts.RecordFinance(cmd.Context(), p.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Recorded %s %s for %s\n",
				formatter.StyleGreen.Render("✔"), f.Type, formatter.Money(f.Amount, f.Currency), p.Name)
			return nil
		},
	}

	cmd.Flags().Float64Var(&in.Amount, "amount", 0, "Amount")
	cmd.Flags().StringVar(&typ, "type", "", "owed, paid or received")
	cmd.Flags().StringVar(&in.Description, "description", "", "What it was for")
	cmd.Flags().StringVar(&in.Currency, "currency", "USD", "ISO currency code")
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

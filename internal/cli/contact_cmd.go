package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rapport/internal/cli/formatter"
	"github.com/alexanderramin/rapport/internal/service"
	"github.com/spf13/cobra"
)

func newContactCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contact",
		Aliases: []string{"contacts", "c"},
		Short:   "Manage contacts",
	}

	cmd.AddCommand(
		newContactListCmd(app),
		newContactShowCmd(app),
		newContactAddCmd(app),
		newContactSearchCmd(app),
		newContactRemoveCmd(app),
	)

	return cmd
}

func newContactListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all contacts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := app.Contacts.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatContactList(people, app.now()))
			return nil
		},
	}
}

func newContactShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id-or-name>",
		Short: "Show a contact with tasks, meetings, finances and timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePerson(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatContactDetail(p, app.now()))
			return nil
		},
	}
}

func newContactSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find contacts by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := app.Contacts.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(people) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("No contacts match %q", args[0])))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatContactList(people, app.now()))
			return nil
		},
	}
}

func newContactAddCmd(app *App) *cobra.Command {
	var (
		in          service.NewContact
		score       int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if !app.interactive() {
					return errors.New("--interactive needs a terminal")
				}
				if err := contactForm(&in).Run(); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("score") {
				in.ReputationScore = &score
			}

			p, err := app.Contacts.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(p.Name), formatter.Dim("("+p.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&in.Role, "role", "", "Job title")
	cmd.Flags().StringVar(&in.Company, "company", "", "Company")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&in.Status, "status", "", "Relationship status: New, Active, Inactive or Close")
	cmd.Flags().IntVar(&score, "score", service.DefaultReputation, "Reputation score 0-100")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the contact with a form")
	cmd.MarkFlagsMutuallyExclusive("interactive", "name")

	return cmd
}

func newContactRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id-or-name>",
		Aliases: []string{"rm"},
		Short:   "Delete a contact and everything recorded about them",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePerson(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Contacts.Delete(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", p.Name)
			return nil
		},
	}
}

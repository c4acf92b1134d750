package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <id-or-name>",
		Short: "Talk to the assistant about a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("chat needs a terminal; use \"rapport ask\" in scripts")
			}
			p, err := resolvePerson(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			prog := tea.NewProgram(newChatModel(cmd.Context(), app, p),
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = prog.Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
}

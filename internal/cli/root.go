// Package cli implements the rapport command line.
package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to everything CLI commands use.
type App struct {
	Contacts  service.ContactService
	Assistant service.AssistantService

	// Populate stores generated or imported people in one transaction.
	Populate func(ctx context.Context, people []domain.Person) error
	// Serve runs the HTTP API until ctx is done. addr overrides the
	// configured listen address when non-empty.
	Serve func(ctx context.Context, addr string) error

	// Random drives the seed generator; nil means wall-clock seeded.
	Random assistant.Randomizer
	Now    func() time.Time

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// Plain disables markdown rendering of assistant messages.
	Plain bool

	// Setup, when set, runs once before any command with the value of
	// --config and fills in the fields above.
	Setup func(configPath string) error
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "rapport" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "rapport",
		Short:         "Relationship dashboard and assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup == nil {
				return nil
			}
			return app.Setup(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.rapport/config.yaml)")
	root.PersistentFlags().BoolVar(&app.Plain, "plain", app.Plain, "Print assistant messages without markdown rendering")

	root.AddCommand(
		newContactCmd(app),
		newAskCmd(app),
		newInsightCmd(app),
		newTaskCmd(app),
		newMeetingCmd(app),
		newFinanceCmd(app),
		newChatCmd(app),
		newSeedCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)

	return root
}

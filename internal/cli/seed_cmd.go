package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/cli/formatter"
	"github.com/alexanderramin/rapport/internal/importer"
	"github.com/alexanderramin/rapport/internal/seed"
	"github.com/spf13/cobra"
)

// defaultSeedCount matches the size of the demo dataset.
const defaultSeedCount = 10

func newSeedCmd(app *App) *cobra.Command {
	var (
		count   int
		seedVal uint64
		out     string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate demo contacts",
		Long: `Generate realistic demo contacts with meetings, tasks, finances and
timeline entries. By default they are stored; with --out they are written
to a JSON dataset that "rapport import" accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			rnd := app.Random
			if cmd.Flags().Changed("seed") {
				rnd = assistant.NewRandom(seedVal)
			}
			people := seed.NewGenerator(rnd, app.now()).People(count)

			if out != "" {
				if err := importer.WriteDataset(out, importer.Export(people)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d contacts to %s\n", len(people), out)
				return nil
			}

			if app.Populate == nil {
				return errors.New("no store configured")
			}
			if err := app.Populate(cmd.Context(), people); err != nil {
				return fmt.Errorf("storing generated contacts: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Generated %d contacts\n", formatter.StyleGreen.Render("✔"), len(people))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", defaultSeedCount, "Number of contacts")
	cmd.Flags().Uint64Var(&seedVal, "seed", 0, "Random seed for reproducible output")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write a dataset file instead of storing")

	return cmd
}

package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rapport/internal/cli/formatter"
	"github.com/alexanderramin/rapport/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import contacts from a JSON dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := importer.LoadDataset(args[0])
			if err != nil {
				return err
			}
			if errs := importer.ValidateDataset(file); len(errs) > 0 {
				return fmt.Errorf("%s has %d problem(s):\n%w", args[0], len(errs), errors.Join(errs...))
			}
			people, err := importer.Convert(file, app.now())
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d contacts\n", args[0], len(people))
				return nil
			}
			if app.Populate == nil {
				return errors.New("no store configured")
			}
			if err := app.Populate(cmd.Context(), people); err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d contacts\n", formatter.StyleGreen.Render("✔"), len(people))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without storing")

	return cmd
}

package main

import (
	"grocer/internal/services/groceryimport/domain"

	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an order-history CSV or ZIP export",
		Long: `Reads every row of the export, keeps grocery purchases and records them.
Rows already imported are skipped, so the same file can be imported again safely.`,
		Args: exactArgs(1, "one export file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			imp, err := a.importer(ctx)
			if err != nil {
				return err
			}
			res, err := imp.Import(ctx, domain.Request{Path: args[0], Bypass: all})
			if err != nil {
				return err
			}
			if done, err := a.emit(res); done {
				return err
			}
			a.printer().ImportResult(res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all-categories", false, "import every row, not only groceries")
	return cmd
}

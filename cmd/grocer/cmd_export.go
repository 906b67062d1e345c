package main

import (
	"grocer/internal/adapters/export"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <out.sqlite>",
		Short: "Write items and purchases to a SQLite database",
		Args:  exactArgs(1, "one output path"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			items, err := a.catalog().Items(ctx)
			if err != nil {
				return err
			}
			c, err := export.WriteSQLite(ctx, args[0], items)
			if err != nil {
				return err
			}
			if done, err := a.emit(c); done {
				return err
			}
			a.printer().Exported(args[0], c.Items, c.Purchases)
			return nil
		},
	}
}

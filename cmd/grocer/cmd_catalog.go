package main

import (
	"grocer/internal/services/catalog/domain"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var category, sort string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked items with purchase cadence",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := domain.ParseSortKey(sort)
			if err != nil {
				return err
			}
			items, err := a.catalog().List(cmd.Context(), domain.ListQuery{Category: category, Sort: key})
			if err != nil {
				return err
			}
			if done, err := a.emit(items); done {
				return err
			}
			a.printer().Items(items)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only items in this category")
	cmd.Flags().StringVar(&sort, "sort", string(domain.SortFrequency), "frequency, name, last or next")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals, most purchased and overdue items",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.catalog().Stats(cmd.Context())
			if err != nil {
				return err
			}
			if done, err := a.emit(st); done {
				return err
			}
			a.printer().Stats(st)
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id-prefix>",
		Short: "Show one item and its purchase history",
		Args:  exactArgs(1, "one item id or id prefix"),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.catalog().Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if done, err := a.emit(d); done {
				return err
			}
			a.printer().Item(d)
			return nil
		},
	}
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/lex-tools/ledes-forge/pkg/runtime/terminal/export"
	"github.com/lex-tools/ledes-forge/pkg/services/catalog"
)

func NewCatalogCmd(reporter *export.Reporter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the built-in UTBMS catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tasks",
		Short: "List the built-in task/activity pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return reporter.Tasks(catalog.DefaultTasks())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "expenses",
		Short: "List the built-in expense categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return reporter.Expenses(catalog.ExpenseCategories())
		},
	})

	return cmd
}

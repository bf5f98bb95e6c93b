package main

import (
	"fmt"

	"textile/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(command *cobra.Command, _ []string) error {
			config, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(config)
			if err != nil {
				return err
			}
			if err = postgres.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(command.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"textile/cmd"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// commandContext loads configuration once for whichever subcommand runs.
type commandContext struct {
	envFile string
	config  *cmd.Config
}

func (c *commandContext) ensureConfig() (cmd.Config, error) {
	if c.config != nil {
		return *c.config, nil
	}
	config, err := cmd.LoadConfig(c.envFile)
	if err != nil {
		return cmd.Config{}, err
	}
	c.config = &config
	return config, nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "textile",
		Short:         "Production orchestrator for an elastic weaving floor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&ctx.envFile, "env-file", "e", ".env", "Environment file loaded before reading configuration")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newStockCommand(ctx))
	return rootCmd
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database %s@%s:%s: %w", config.DBName, config.DBHost, config.DBPort, err)
	}
	return db, nil
}

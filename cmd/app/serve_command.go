package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"textile/cmd"
	httpadapter "textile/internal/adapters/in/http"
	"textile/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var migrate bool

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and scheduled jobs",
		RunE: func(command *cobra.Command, _ []string) error {
			config, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return serve(command.Context(), config, migrate)
		},
	}
	serveCmd.Flags().BoolVar(&migrate, "migrate", false, "Apply the database schema before serving")
	return serveCmd
}

func serve(parent context.Context, config cmd.Config, migrate bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger(config.LogLevel)
	db, err := openDatabase(config)
	if err != nil {
		return err
	}
	if migrate {
		if err = postgres.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	app := cmd.NewCompositionRoot(config, db, logger)
	server := httpadapter.NewServer(app.HTTPHandlers(), httpadapter.NewMetrics(), logger)
	e, err := httpadapter.NewEcho(ctx, server)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server started", "port", config.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.InfoContext(context.Background(), "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// Package pgtest starts a throwaway PostgreSQL container with the production schema for
// integration suites.
package pgtest

import (
	"context"
	"fmt"
	"strings"
	"time"

	adapter "textile/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Start runs postgres:15-alpine, connects gorm with error translation on and migrates the schema.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}
	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return container, nil, err
	}
	if err = adapter.Migrate(db); err != nil {
		return container, nil, fmt.Errorf("migrate: %w", err)
	}
	return container, db, nil
}

// Truncate empties every table of the schema.
func Truncate(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE " + strings.Join(adapter.Tables, ", ")).Error
}

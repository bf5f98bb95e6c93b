package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	LogLevel         string
	LowStockSchedule string
}

// LoadConfig reads the environment after loading envFile into it. A missing envFile is not an
// error, so containers can pass plain environment variables.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	return Config{
		HTTPPort:         envOr("HTTP_PORT", "8080"),
		DBHost:           envOr("DB_HOST", "localhost"),
		DBPort:           envOr("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBSslMode:        envOr("DB_SSLMODE", "disable"),
		LogLevel:         envOr("LOG_LEVEL", "info"),
		LowStockSchedule: os.Getenv("LOW_STOCK_SCHEDULE"),
	}, nil
}

// DSN is the libpq connection string of the database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/billing"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN             string
	Environment       string
	MigrationsPath    string
	DefaultHourlyRate float64
	OverdrawPolicy    billing.OverdrawPolicy
}

func Load() (*Config, error) {
	// Try to load .env; missing file is fine, plain env vars still apply.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    os.Getenv("ENV"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		OverdrawPolicy: billing.OverdrawPolicy(os.Getenv("PACKAGE_OVERDRAW")),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.OverdrawPolicy == "" {
		cfg.OverdrawPolicy = billing.OverdrawReject
	}
	if !cfg.OverdrawPolicy.Valid() {
		return nil, fmt.Errorf("PACKAGE_OVERDRAW must be %q or %q", billing.OverdrawReject, billing.OverdrawAllow)
	}

	if rate := os.Getenv("DEFAULT_HOURLY_RATE"); rate != "" {
		parsed, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return nil, fmt.Errorf("DEFAULT_HOURLY_RATE is not a number: %w", err)
		}
		cfg.DefaultHourlyRate = parsed
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

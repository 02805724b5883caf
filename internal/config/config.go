package config

import (
	"log"
	"os"
	"strconv"

	"github.com/Simplici0/soapworks/internal/formulation"
)

const (
	defaultAppEnv = "dev"
	defaultDBPath = "./soapworks.db"
	defaultPort   = "8080"
	defaultUnit   = formulation.UnitPound
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv         string
	DBPath         string
	Port           string
	DefaultUnit    formulation.Unit
	MetricsEnabled bool
}

// IsDev reports whether migrations and catalog seeding run at startup.
func (c Config) IsDev() bool {
	return c.AppEnv == "" || c.AppEnv == "dev"
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	if n, err := loadDotEnv(".env"); err != nil {
		log.Printf("warning: reading .env: %v", err)
	} else if n > 0 {
		log.Printf("loaded %d variables from .env", n)
	}

	cfg := Config{
		AppEnv:         os.Getenv("APP_ENV"),
		DBPath:         os.Getenv("DB_PATH"),
		Port:           os.Getenv("PORT"),
		DefaultUnit:    defaultUnit,
		MetricsEnabled: true,
	}

	if cfg.AppEnv == "" {
		cfg.AppEnv = defaultAppEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if raw := os.Getenv("DEFAULT_UNIT"); raw != "" {
		unit, err := formulation.ParseUnit(raw)
		if err != nil {
			log.Printf("warning: DEFAULT_UNIT %q is not lb, oz or g; using %s", raw, defaultUnit)
		} else {
			cfg.DefaultUnit = unit
		}
	}

	if raw := os.Getenv("METRICS_ENABLED"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			log.Printf("warning: METRICS_ENABLED %q is not a boolean; metrics stay enabled", raw)
		} else {
			cfg.MetricsEnabled = enabled
		}
	}

	return cfg
}

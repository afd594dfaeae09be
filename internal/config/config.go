package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	DatabaseURL    string
	DatabaseDriver string
	StorageKey     string
	OutputDir      string
	LogLevel       string
	LogFormat      string
	DevMode        bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	driver := getEnv(k, "DATABASE_DRIVER", "sqlite3")
	switch driver {
	case "sqlite3", "libsql":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q (expected sqlite3 or libsql)", driver)
	}

	// Dev mode defaults to true for local builds
	devMode := getEnv(k, "DEV_MODE", "true") == "true"
	logFormat := "json"
	if devMode {
		logFormat = "console"
	}

	cfg := &Config{
		DatabaseURL:    getEnv(k, "DATABASE_URL", "./facturier.db"),
		DatabaseDriver: driver,
		StorageKey:     getEnv(k, "STORAGE_KEY", "facturier_data"),
		OutputDir:      getEnv(k, "OUTPUT_DIR", "."),
		LogLevel:       getEnv(k, "LOG_LEVEL", "info"),
		LogFormat:      getEnv(k, "LOG_FORMAT", logFormat),
		DevMode:        devMode,
	}

	return cfg, nil
}

func (c *Config) Dump() {
	fmt.Printf("Database URL: %s\n", c.DatabaseURL)
	fmt.Printf("Database Driver: %s\n", c.DatabaseDriver)
	fmt.Printf("Storage Key: %s\n", c.StorageKey)
	fmt.Printf("Output Dir: %s\n", c.OutputDir)
	fmt.Printf("Log: %s, %s\n", c.LogLevel, c.LogFormat)
	fmt.Printf("Dev Mode: %t\n", c.DevMode)
}

func getEnv(k *koanf.Koanf, key, defaultValue string) string {
	if value := strings.TrimSpace(k.String(key)); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"DATABASE_URL", "DATABASE_DRIVER", "STORAGE_KEY", "OUTPUT_DIR", "LOG_LEVEL", "LOG_FORMAT", "DEV_MODE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "./facturier.db", cfg.DatabaseURL)
	require.Equal(t, "sqlite3", cfg.DatabaseDriver)
	require.Equal(t, "facturier_data", cfg.StorageKey)
	require.Equal(t, ".", cfg.OutputDir)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "console", cfg.LogFormat)
	require.True(t, cfg.DevMode)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_URL", "libsql://example.turso.io")
	t.Setenv("DATABASE_DRIVER", "libsql")
	t.Setenv("STORAGE_KEY", "other")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("DEV_MODE", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "libsql://example.turso.io", cfg.DatabaseURL)
	require.Equal(t, "libsql", cfg.DatabaseDriver)
	require.Equal(t, "other", cfg.StorageKey)
	require.Equal(t, "json", cfg.LogFormat)
	require.False(t, cfg.DevMode)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDevModeSelectsLogFormat(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("DEV_MODE", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.DevMode)
	require.Equal(t, "json", cfg.LogFormat)

	t.Setenv("LOG_FORMAT", "console")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, "console", cfg.LogFormat)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

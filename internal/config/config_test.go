package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "Voxhire API", cfg.AppName)
	require.Equal(t, "postgres", cfg.DatabaseDriver)
	require.Equal(t, "qwen-flash", cfg.PrimaryModel)
	require.Equal(t, 5, cfg.QuestionCount)
	require.Equal(t, 5*time.Minute, cfg.PollInterval)
	require.Equal(t, 4, cfg.GraderWorkers)
	require.Equal(t, 64, cfg.GraderQueueSize)
	require.Equal(t, ":8000", cfg.HTTPAddress())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("VOXHIRE_DATABASE_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported database driver")
}

func TestLoadSQLiteDriver(t *testing.T) {
	t.Setenv("VOXHIRE_DATABASE_DRIVER", "sqlite")
	t.Setenv("VOXHIRE_DATABASE_URL", "interview.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "interview.db", cfg.DatabaseURL)
}

func TestModelChainDeduplicatesPrimary(t *testing.T) {
	cfg := Config{
		PrimaryModel:   "qwen-flash",
		FallbackModels: []string{"qwen-flash", "qwq-plus", " qvq-plus "},
	}
	require.Equal(t, []string{"qwen-flash", "qwq-plus", "qvq-plus"}, cfg.ModelChain())
}

func TestHTTPAddressKeepsColonPrefix(t *testing.T) {
	cfg := Config{AppPort: ":9100"}
	require.Equal(t, ":9100", cfg.HTTPAddress())
}

package cmd_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"pizzeria/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HTTP_PORT", "PARAMS_FILE", "LOG_LEVEL", "CLIENT_ORDER_SCHEDULE", "STATS_REPORT_SCHEDULE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := cmd.LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "config.json", cfg.ParamsFile)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.ClientOrderSchedule)
	assert.Equal(t, "@every 10s", cfg.StatsReportSchedule)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "HTTP_PORT=9090\nPARAMS_FILE=params.yaml\nLOG_LEVEL=debug\nCLIENT_ORDER_SCHEDULE=@every 2s\nSTATS_REPORT_SCHEDULE=\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := cmd.LoadConfig(envFile)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "params.yaml", cfg.ParamsFile)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "@every 2s", cfg.ClientOrderSchedule)
	assert.Empty(t, cfg.StatsReportSchedule, "explicit empty schedule disables the job")
}

func TestLoadConfig_MissingExplicitEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.Error(t, err)
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("LOG_LEVEL", "loud")

	_, err := cmd.LoadConfig("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacharts-labs/datacharts/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultHost, cfg.Server.Host)
	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultMaxExecutionTime, cfg.Limits.MaxExecutionTime)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datacharts.yaml")
	content := `
server:
  host: 0.0.0.0
  port: 9000
limits:
  max_execution_time: 5s
output: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Limits.MaxExecutionTime)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datacharts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\n"), 0o600))

	t.Setenv("DATACHARTS_OUTPUT", "csv")
	t.Setenv("DATACHARTS_SERVER_PORT", "7070")

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Output)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("DATACHARTS_OUTPUT", "csv")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "")
	flags.Duration("timeout", 0, "")
	require.NoError(t, flags.Parse([]string{"--output", "json", "--timeout", "2s"}))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 2*time.Second, cfg.Limits.MaxExecutionTime)
}

func TestLoadUnsetFlagsDoNotOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Output, "unset flag keeps the default")
}

func TestLoadVerboseForcesDebug(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.BoolP("verbose", "v", false, "")
	require.NoError(t, flags.Parse([]string{"--verbose"}))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("DATACHARTS_OUTPUT", "xml")
	_, err := config.Load("", nil)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("DATACHARTS_SERVER_PORT", "70000")
	_, err := config.Load("", nil)
	assert.Error(t, err)
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

const validParams = `
bucket:
  name: sentiment-datasets
  region: us-east-2
file_name: data.csv
data_ingestion:
  test_size: 0.2
feature_engineering:
  max_features: 50
`

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug", "console")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = newLogger("warn", "json")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = newLogger("loud", "json")
	assert.Error(t, err)

	_, err = newLogger("info", "xml")
	assert.Error(t, err)
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := rootCommand()
	for _, name := range []string{"params", "env-file", "data-path", "log-level", "log-format"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "params.yaml", cmd.Flags().Lookup("params").DefValue)
}

func useObservedBootstrapLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	prev := bootstrapLogger
	bootstrapLogger = func() (*zap.Logger, error) { return zap.New(core), nil }
	t.Cleanup(func() { bootstrapLogger = prev })
	return logs
}

func TestRootCommand_MissingParamsFile(t *testing.T) {
	logs := useObservedBootstrapLogger(t)
	dir := t.TempDir()
	cmd := rootCommand()
	cmd.SetArgs([]string{
		"--params", filepath.Join(dir, "missing.yaml"),
		"--env-file", filepath.Join(dir, "missing.env"),
		"--data-path", dir,
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfiguration)

	entries := logs.FilterMessage("Failed to load configuration").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "configure", entries[0].ContextMap()["stage"])
}

func TestRootCommand_InvalidLogLevelIsLogged(t *testing.T) {
	logs := useObservedBootstrapLogger(t)
	dir := t.TempDir()
	params := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(params, []byte(validParams), 0o644))
	t.Setenv("LEDGER_ENABLED", "false")

	cmd := rootCommand()
	cmd.SetArgs([]string{
		"--params", params,
		"--env-file", filepath.Join(dir, "missing.env"),
		"--data-path", dir,
		"--log-level", "loud",
		"--log-format", "json",
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfiguration)
	assert.Equal(t, 1, logs.FilterMessage("Failed to load configuration").Len())
}

package logging_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostafa-wahied/portracker-core/internal/domain/config"
	infralogging "github.com/mostafa-wahied/portracker-core/internal/infrastructure/logging"
)

func TestBuildLogger_ConsoleOnlyWhenNoLogFilePath(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	logger, err := infralogging.BuildLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, logger.Close())
}

func TestBuildLogger_AddsJSONWriterWhenLogFilePathSet(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.LogFilePath = filepath.Join(t.TempDir(), "agent.jsonl")

	logger, err := infralogging.BuildLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, logger.Close())

	assert.FileExists(t, cfg.LogFilePath)
}

func TestBuildLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.LogLevel = "not-a-level"

	logger, err := infralogging.BuildLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestDefaultLogger_IsUsable(t *testing.T) {
	t.Parallel()

	logger := infralogging.DefaultLogger()
	require.NotNil(t, logger)
	logger.Info("", "x", "", nil)
	assert.NoError(t, logger.Close())
}

func TestNewSilentLogger_DiscardsEverything(t *testing.T) {
	t.Parallel()

	logger := infralogging.NewSilentLogger()
	logger.Error("", "x", "", nil)
	assert.NoError(t, logger.Close())
}

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pms/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_SplitsByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	conf := &config.Configuration{
		App: config.App{Name: "pms", Env: "test", Version: "1.2.3"},
		Log: config.Log{Level: "info"},
	}
	logger, err := newLogger(conf, &stdout, &stderr)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("rent generated")
	logger.Warn("dispatch failed")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "rent generated")
	assert.NotContains(t, stdout.String(), "dispatch failed")
	assert.Contains(t, stderr.String(), "dispatch failed")

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "pms", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, err := newLogger(&config.Configuration{Log: config.Log{Level: "loud"}}, &stdout, &stderr)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	require.NoError(t, logger.Sync())
	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "shown")
}

package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	log, closer, err := New(Config{})
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNewParsesLevel(t *testing.T) {
	log, closer, err := New(Config{Level: "DEBUG", Format: "json"})
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
}

func TestNewRejectsBadConfig(t *testing.T) {
	for name, cfg := range map[string]Config{
		"level":  {Level: "loud"},
		"output": {Output: "syslog"},
		"format": {Format: "xml"},
	} {
		t.Run(name, func(t *testing.T) {
			_, closer, err := New(cfg)
			assert.Error(t, err)
			assert.NotNil(t, closer)
		})
	}
}

func TestNewWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "showroom.log")
	log, closer, err := New(Config{Level: "info", Format: "json", Output: "file", File: path})
	require.NoError(t, err)

	log.Info().Str("model", "F40").Msg("model selected")
	log.Debug().Msg("filtered")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(data, &line))
	assert.Equal(t, "F40", line["model"])
	assert.Equal(t, "model selected", line["message"])
	assert.Equal(t, "info", line["level"])
}

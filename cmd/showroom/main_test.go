package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"showroom/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type closeRecorder struct{ closed int }

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func TestRunClosesLogOnStartupFailure(t *testing.T) {
	cfg := &config.Config{
		Catalog: filepath.Join(t.TempDir(), "missing.yaml"),
		Prefs:   filepath.Join(t.TempDir(), "prefs.toml"),
	}
	var out bytes.Buffer
	closer := &closeRecorder{}

	code := run(cfg, zerolog.New(&out), closer)

	assert.Equal(t, 1, code)
	assert.Equal(t, 1, closer.closed)
	assert.Contains(t, out.String(), "startup failed")
}

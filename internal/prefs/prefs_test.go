package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "prefs.toml"))
	require.NoError(t, err)
	assert.Nil(t, p)

	model, color := p.Selection()
	assert.Empty(t, model)
	assert.Empty(t, color)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showroom", "prefs.toml")
	want := &Prefs{Model: "SF90", Color: "#FFD300", WindowWidth: 1600, WindowHeight: 900, CameraYaw: 1.25}
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	model, color := got.Selection()
	assert.Equal(t, "SF90", model)
	assert.Equal(t, "#FFD300", color)
}

func TestLoadReadsHandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = \"F50\"\ncolor = \"NERO DS\"\n"), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "F50", p.Model)
	assert.Equal(t, "NERO DS", p.Color)
	assert.Zero(t, p.WindowWidth)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

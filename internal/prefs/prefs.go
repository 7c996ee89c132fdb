// Package prefs persists the last showroom selection between sessions.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Prefs holds what the showroom restores on start.
type Prefs struct {
	Model string `toml:"model"`
	Color string `toml:"color"`

	WindowWidth  int `toml:"window_width,omitempty"`
	WindowHeight int `toml:"window_height,omitempty"`

	CameraYaw   float32 `toml:"camera_yaw"`
	CameraPitch float32 `toml:"camera_pitch"`
}

// Load reads prefs from path. A missing file is not an error and yields nil.
func Load(path string) (*Prefs, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse prefs %s: %w", path, err)
	}
	return &p, nil
}

// Save writes p to path, creating parent directories as needed.
func (p *Prefs) Save(path string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create prefs directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Selection returns the stored model and color, or empty strings when p is nil.
func (p *Prefs) Selection() (model, color string) {
	if p == nil {
		return "", ""
	}
	return p.Model, p.Color
}

// Package catalog is the static registry of vehicle models and the paint
// palette shared by all of them.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"

	"showroom/internal/material"
	"showroom/internal/paint"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownModel = errors.New("unknown model")
	ErrInvalidColor = errors.New("invalid color")
)

//go:embed catalog.yaml
var builtin []byte

// Descriptor describes one model. Descriptors are copied out of the catalog,
// so callers cannot change what other callers see.
type Descriptor struct {
	ID          string
	DisplayName string
	Year        string
	Description string
	AssetPath   string
	Scale       float32
	Position    rl.Vector3
	Profile     material.Profile
	Rule        paint.Rule
	Specs       map[string]string
	// SpecKeys is the display order of Specs.
	SpecKeys []string
}

// Summary is the part of a descriptor the model picker shows.
type Summary struct {
	ID          string
	DisplayName string
	Year        string
	Description string
	Specs       map[string]string
	SpecKeys    []string
}

type Catalog struct {
	models       map[string]Descriptor
	order        []string
	palette      Palette
	defaultModel string
	defaultColor ColorOption
}

// Default parses the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(builtin)
}

// Load reads a catalog file in the same format as the built-in one.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return f.build()
}

// Get returns the descriptor for id.
func (c *Catalog) Get(id string) (Descriptor, error) {
	d, ok := c.models[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownModel, id)
	}
	return d.copy(), nil
}

// Has reports whether id names a model.
func (c *Catalog) Has(id string) bool {
	_, ok := c.models[id]
	return ok
}

// List returns every descriptor. The order is the catalog file order, which
// callers should not rely on for display.
func (c *Catalog) List() []Descriptor {
	out := make([]Descriptor, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.models[id].copy())
	}
	return out
}

func (c *Catalog) Summaries() []Summary {
	out := make([]Summary, 0, len(c.order))
	for _, d := range c.List() {
		out = append(out, Summary{
			ID:          d.ID,
			DisplayName: d.DisplayName,
			Year:        d.Year,
			Description: d.Description,
			Specs:       d.Specs,
			SpecKeys:    d.SpecKeys,
		})
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.order)
}

func (c *Catalog) Palette() Palette {
	return append(Palette(nil), c.palette...)
}

func (c *Catalog) DefaultModel() string {
	return c.defaultModel
}

func (c *Catalog) DefaultColor() ColorOption {
	return c.defaultColor
}

func (d Descriptor) copy() Descriptor {
	d.Specs = maps.Clone(d.Specs)
	d.SpecKeys = append([]string(nil), d.SpecKeys...)
	if s, ok := d.Rule.(paint.Substring); ok {
		d.Rule = paint.NewSubstring(s.Needle, s.Exclusions...)
	}
	return d
}

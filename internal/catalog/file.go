package catalog

import (
	"errors"
	"fmt"

	"showroom/internal/material"
	"showroom/internal/paint"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// --- YAML types ---

type catalogFile struct {
	DefaultModel string     `yaml:"default_model"`
	DefaultColor string     `yaml:"default_color"`
	Palette      []colorDef `yaml:"palette"`
	Models       []modelDef `yaml:"models"`
}

type colorDef struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

// modelDef is one model entry. An omitted profile is material.Standard; a
// profile name that does not parse is rejected when decoding.
type modelDef struct {
	ID          string           `yaml:"id"`
	DisplayName string           `yaml:"display_name"`
	Year        string           `yaml:"year"`
	Description string           `yaml:"description"`
	Asset       string           `yaml:"asset"`
	Scale       float32          `yaml:"scale"`
	Position    [3]float32       `yaml:"position"`
	Profile     material.Profile `yaml:"profile"`
	Paint       paintDef         `yaml:"paint"`
	Specs       yaml.Node        `yaml:"specs"`
}

type paintDef struct {
	Allowlist []string      `yaml:"allowlist"`
	Substring *substringDef `yaml:"substring"`
}

type substringDef struct {
	Needle     string   `yaml:"needle"`
	Exclusions []string `yaml:"exclusions"`
}

// --- Validation ---

func (f *catalogFile) build() (*Catalog, error) {
	c := &Catalog{models: make(map[string]Descriptor, len(f.Models))}

	if len(f.Palette) == 0 {
		return nil, errors.New("catalog: palette is empty")
	}
	for _, def := range f.Palette {
		opt, err := newColorOption(def.Name, def.Hex)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if def.Name == "" {
			return nil, fmt.Errorf("catalog: palette entry %s has no name", opt.Hex)
		}
		if _, err := c.palette.Lookup(opt.Hex); err == nil {
			return nil, fmt.Errorf("catalog: duplicate palette color %s", opt.Hex)
		}
		c.palette = append(c.palette, opt)
	}

	if len(f.Models) == 0 {
		return nil, errors.New("catalog: no models")
	}
	for i, def := range f.Models {
		d, err := def.descriptor()
		if err != nil {
			return nil, fmt.Errorf("catalog: model %d (%q): %w", i, def.ID, err)
		}
		if _, dup := c.models[d.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate model id %q", d.ID)
		}
		c.models[d.ID] = d
		c.order = append(c.order, d.ID)
	}

	c.defaultModel = f.DefaultModel
	if c.defaultModel == "" {
		c.defaultModel = c.order[0]
	}
	if !c.Has(c.defaultModel) {
		return nil, fmt.Errorf("catalog: default model: %w: %q", ErrUnknownModel, c.defaultModel)
	}

	c.defaultColor = c.palette[0]
	if f.DefaultColor != "" {
		opt, err := c.palette.Lookup(f.DefaultColor)
		if err != nil {
			return nil, fmt.Errorf("catalog: default color: %w", err)
		}
		c.defaultColor = opt
	}
	return c, nil
}

func (def modelDef) descriptor() (Descriptor, error) {
	if def.ID == "" {
		return Descriptor{}, errors.New("missing id")
	}
	if def.Asset == "" {
		return Descriptor{}, errors.New("missing asset path")
	}
	if def.Scale <= 0 {
		return Descriptor{}, fmt.Errorf("scale must be positive, got %v", def.Scale)
	}
	rule, err := def.Paint.rule()
	if err != nil {
		return Descriptor{}, err
	}
	keys, specs, err := orderedSpecs(&def.Specs)
	if err != nil {
		return Descriptor{}, err
	}

	name := def.DisplayName
	if name == "" {
		name = def.ID
	}
	return Descriptor{
		ID:          def.ID,
		DisplayName: name,
		Year:        def.Year,
		Description: def.Description,
		AssetPath:   def.Asset,
		Scale:       def.Scale,
		Position:    rl.Vector3{X: def.Position[0], Y: def.Position[1], Z: def.Position[2]},
		Profile:     def.Profile,
		Rule:        rule,
		Specs:       specs,
		SpecKeys:    keys,
	}, nil
}

func (p paintDef) rule() (paint.Rule, error) {
	switch {
	case len(p.Allowlist) > 0 && p.Substring != nil:
		return nil, errors.New("paint: allowlist and substring are mutually exclusive")
	case len(p.Allowlist) > 0:
		return paint.NewAllowlist(p.Allowlist...), nil
	case p.Substring != nil:
		if p.Substring.Needle == "" {
			return nil, errors.New("paint: substring needle is empty")
		}
		return paint.NewSubstring(p.Substring.Needle, p.Substring.Exclusions...), nil
	default:
		return nil, errors.New("paint: no rule")
	}
}

// orderedSpecs keeps the file order of the specs mapping for display.
func orderedSpecs(n *yaml.Node) ([]string, map[string]string, error) {
	specs := map[string]string{}
	if n.Kind == 0 {
		return nil, specs, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("specs: expected a mapping, got %v", n.Tag)
	}
	var keys []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i].Value, n.Content[i+1].Value
		if _, dup := specs[k]; dup {
			return nil, nil, fmt.Errorf("specs: duplicate key %q", k)
		}
		keys = append(keys, k)
		specs[k] = v
	}
	return keys, specs, nil
}

package material

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// Profile is a fixed material-parameter preset applied on top of a paint color.
type Profile int

const (
	Standard Profile = iota
	PhysicalClearcoat
)

type params struct {
	metalness float32
	roughness float32
	clearcoat float32
}

var profileParams = map[Profile]params{
	Standard:          {metalness: 0.9, roughness: 0.1},
	PhysicalClearcoat: {metalness: 0.2, roughness: 0.1, clearcoat: 1.0},
}

var profileNames = map[Profile]string{
	Standard:          "standard",
	PhysicalClearcoat: "physical-clearcoat",
}

func (p Profile) String() string {
	if name, ok := profileNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Profile(%d)", int(p))
}

// ParseProfile accepts the names produced by String.
func ParseProfile(s string) (Profile, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for p, name := range profileNames {
		if name == key {
			return p, nil
		}
	}
	return Standard, fmt.Errorf("unknown render profile %q", s)
}

func (p Profile) MarshalYAML() (any, error) {
	if _, ok := profileNames[p]; !ok {
		return nil, fmt.Errorf("unknown render profile %d", int(p))
	}
	return p.String(), nil
}

func (p *Profile) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseProfile(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Spec is a render-ready material description. Specs are plain values:
// two specs built from the same inputs compare equal with ==.
type Spec struct {
	Profile   Profile
	Hex       string
	Color     rl.Color
	Metalness float32
	Roughness float32
	Clearcoat float32
}

// Build returns the material for a paint color under the given profile.
func Build(profile Profile, hex string) (Spec, error) {
	p, ok := profileParams[profile]
	if !ok {
		return Spec{}, fmt.Errorf("build material: unknown render profile %d", int(profile))
	}
	norm, c, err := ParseHex(hex)
	if err != nil {
		return Spec{}, fmt.Errorf("build material: %w", err)
	}
	return Spec{
		Profile:   profile,
		Hex:       norm,
		Color:     c,
		Metalness: p.metalness,
		Roughness: p.roughness,
		Clearcoat: p.clearcoat,
	}, nil
}

// ParseHex parses "#RGB" or "#RRGGBB" and returns the normalized upper-case
// "#RRGGBB" form alongside the opaque raylib color.
func ParseHex(hex string) (string, rl.Color, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", rl.Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return strings.ToUpper(c.Hex()), rl.NewColor(r, g, b, 255), nil
}

// FromColor builds the spec an asset material would carry when it was authored
// with explicit PBR factors rather than from the paint palette.
func FromColor(c rl.Color, metalness, roughness float32) Spec {
	return Spec{
		Profile:   Standard,
		Hex:       strings.ToUpper(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)),
		Color:     c,
		Metalness: metalness,
		Roughness: roughness,
	}
}

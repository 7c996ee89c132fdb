package catalog

import (
	"fmt"
	"strings"

	"showroom/internal/material"
)

// ColorOption is one paint color of the shared palette.
type ColorOption struct {
	Name string
	Hex  string
}

// Palette is the fixed list of paint colors offered for every model.
type Palette []ColorOption

// Lookup finds a color by hex or by name. Hex values are normalized the way
// palette entries are, so "#f00", "FF0000" and "#FF0000" are the same color.
func (p Palette) Lookup(s string) (ColorOption, error) {
	key := strings.TrimSpace(s)
	if key != "" {
		hex, _, hexErr := material.ParseHex(key)
		for _, c := range p {
			if (hexErr == nil && c.Hex == hex) || strings.EqualFold(c.Name, key) {
				return c, nil
			}
		}
	}
	return ColorOption{}, fmt.Errorf("%w: %q is not in the palette", ErrInvalidColor, s)
}

// Contains reports whether c is exactly one of the palette entries.
func (p Palette) Contains(c ColorOption) bool {
	for _, o := range p {
		if o == c {
			return true
		}
	}
	return false
}

func newColorOption(name, hex string) (ColorOption, error) {
	norm, _, err := material.ParseHex(hex)
	if err != nil {
		return ColorOption{}, fmt.Errorf("%w: palette entry %q: %v", ErrInvalidColor, name, err)
	}
	return ColorOption{Name: name, Hex: norm}, nil
}

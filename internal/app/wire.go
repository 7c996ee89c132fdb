package app

import (
	"fmt"
	"net/http"
	"os"

	"showroom/internal/assets"
	"showroom/internal/catalog"
	"showroom/internal/config"
	"showroom/internal/prefs"

	"github.com/rs/zerolog"
)

// LoadCatalog returns the built-in catalog, or the file named by
// SHOWROOM_CATALOG when set.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Default()
	}
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", cfg.Catalog, err)
	}
	return cat, nil
}

// NewSource picks HTTP when a base URL is configured and the asset
// directory otherwise.
func NewSource(cfg *config.Config) assets.Source {
	if cfg.Remote() {
		return assets.HTTPSource{
			BaseURL:    cfg.AssetBaseURL,
			Client:     &http.Client{Timeout: cfg.FetchTimeout},
			MaxElapsed: cfg.FetchRetry,
		}
	}
	return assets.DirSource{FS: os.DirFS(cfg.AssetDir)}
}

// NewLoader builds the glTF asset loader for cfg.
func NewLoader(cfg *config.Config, log zerolog.Logger) *assets.Loader {
	return assets.NewLoader(NewSource(cfg), assets.GLTFDecoder{}, log)
}

// InitialSelection resolves the model and color to start with. Saved prefs
// win over configured defaults, and anything the catalog no longer knows is
// skipped with a warning. Empty results mean the catalog defaults.
func InitialSelection(cat *catalog.Catalog, cfg *config.Config, saved *prefs.Prefs, log zerolog.Logger) (model, color string) {
	savedModel, savedColor := saved.Selection()

	for _, m := range []string{savedModel, cfg.DefaultModel} {
		if m == "" {
			continue
		}
		if cat.Has(m) {
			model = m
			break
		}
		log.Warn().Str("model", m).Msg("ignoring unknown start model")
	}
	for _, c := range []string{savedColor, cfg.DefaultColor} {
		if c == "" {
			continue
		}
		if opt, err := cat.Palette().Lookup(c); err == nil {
			color = opt.Hex
			break
		}
		log.Warn().Str("color", c).Msg("ignoring start color outside the palette")
	}
	return model, color
}

package commands

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"showroom/internal/app"
	"showroom/internal/catalog"
	"showroom/internal/config"
	"showroom/internal/configurator"
	"showroom/internal/logger"
)

// env is what every subcommand works with.
type env struct {
	cfg    *config.Config
	log    zerolog.Logger
	cat    *catalog.Catalog
	loader configurator.Loader
}

var (
	envFile  string
	assetDir string
	baseURL  string
	verbose  bool

	current *env
	closer  io.Closer
)

func Execute() error {
	return newRoot().Execute()
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "inspect",
		Short:        "Inspect showroom models and paint rules without a window",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if assetDir != "" {
				cfg.AssetDir = assetDir
			}
			if baseURL != "" {
				cfg.AssetBaseURL = baseURL
			}
			if verbose {
				cfg.Log.Level = "debug"
			}

			log, c, err := logger.New(cfg.Log)
			if err != nil {
				return err
			}
			closer = c

			cat, err := app.LoadCatalog(cfg)
			if err != nil {
				return err
			}
			current = &env{cfg: cfg, log: log, cat: cat, loader: app.NewLoader(cfg, log)}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closer != nil {
				return closer.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env", ".env", "env file to read before SHOWROOM_* variables")
	root.PersistentFlags().StringVar(&assetDir, "assets", "", "asset directory (overrides SHOWROOM_ASSET_DIR)")
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "fetch assets from this URL (overrides SHOWROOM_ASSET_BASE_URL)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(modelsCmd(), nodesCmd(), paintCmd())
	return root
}

// settle waits until no load is in flight.
func settle(ctx context.Context, c *configurator.Configurator) error {
	for c.Pending() > 0 {
		if err := c.Await(ctx); err != nil {
			return err
		}
	}
	return nil
}

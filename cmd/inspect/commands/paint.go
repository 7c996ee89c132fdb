package commands

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"showroom/internal/configurator"
)

func paintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paint <model> <color>",
		Short: "Load a model, apply a palette color and report the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := configurator.New(current.cat, current.loader, configurator.Options{Logger: current.log})
			if err != nil {
				return err
			}
			defer conf.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), current.cfg.FetchTimeout)
			defer cancel()
			if err := conf.SelectModel(args[0]); err != nil {
				return err
			}
			if err := conf.SelectColor(args[1]); err != nil {
				return err
			}
			if err := settle(ctx, conf); err != nil {
				return err
			}
			return writePaint(cmd.OutOrStdout(), conf.State(), conf.Diagnostics())
		},
	}
}

func writePaint(w io.Writer, s configurator.State, d configurator.Diagnostics) error {
	fmt.Fprintf(w, "model:  %s\n", s.ModelID)
	fmt.Fprintf(w, "color:  %s %s\n", s.Color.Name, s.Color.Hex)
	fmt.Fprintf(w, "status: %s\n", s.Status)
	if s.Status == configurator.Failed {
		return fmt.Errorf("load %s: %w", s.ModelID, s.Err)
	}
	if s.Instance == nil {
		return fmt.Errorf("model %s is %s", s.ModelID, s.Status)
	}

	fmt.Fprintf(w, "parts:  %d of %d nodes painted\n", s.Instance.PaintableCount(), s.Instance.NodeCount())
	for _, name := range s.Instance.Paintable() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	if spec, ok := s.Instance.Material(); ok {
		fmt.Fprintf(w, "material: %s color=%s metalness=%.2f roughness=%.2f clearcoat=%.2f\n",
			spec.Profile, spec.Hex, spec.Metalness, spec.Roughness, spec.Clearcoat)
	}

	ids := make([]string, 0, len(d.ZeroMatch))
	for id := range d.ZeroMatch {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "warning: paint rule for %s matched no parts (%d times)\n", id, d.ZeroMatch[id])
	}
	return nil
}

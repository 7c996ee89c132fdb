package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"showroom/internal/bounds"
	"showroom/internal/instance"
	"showroom/internal/scene"
)

func nodesCmd() *cobra.Command {
	var paintableOnly bool
	cmd := &cobra.Command{
		Use:   "nodes <model>",
		Short: "Load a model and list every node with its mesh and paintable flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := current.cat.Get(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), current.cfg.FetchTimeout)
			defer cancel()

			raw, err := current.loader.Load(ctx, d.AssetPath)
			if err != nil {
				return err
			}
			inst, err := instance.Instantiate(d.ID, raw, d.Rule, instance.Placement{Scale: d.Scale, Position: d.Position})
			if err != nil {
				return err
			}
			return writeNodes(cmd.OutOrStdout(), inst, paintableOnly)
		},
	}
	cmd.Flags().BoolVar(&paintableOnly, "paintable", false, "only list paintable nodes")
	return cmd
}

func writeNodes(w io.Writer, inst *instance.Instance, paintableOnly bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tMESH\tPAINTABLE\tPRIMITIVES")
	var walk func(n *scene.Node, depth int)
	walk = func(n *scene.Node, depth int) {
		isPaintable := inst.IsPaintable(n)
		if !paintableOnly || isPaintable {
			prims := 0
			if n.IsMesh() {
				prims = len(n.Mesh.Primitives)
			}
			fmt.Fprintf(tw, "%s%s\t%s\t%s\t%d\n", strings.Repeat("  ", depth), n.Name, yesNo(n.IsMesh()), yesNo(isPaintable), prims)
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(inst.Root(), 0)
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "%d nodes, %d paintable\n", inst.NodeCount(), inst.PaintableCount())
	if ext := bounds.Extent(bounds.Parts(inst)); !ext.IsEmpty() {
		size := ext.Size()
		fmt.Fprintf(tw, "extent %.2f x %.2f x %.2f centered at (%.2f, %.2f, %.2f)\n",
			size.X, size.Y, size.Z, ext.Center().X, ext.Center().Y, ext.Center().Z)
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}

package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"showroom/internal/catalog"
)

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List catalog models and the paint palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeModels(cmd.OutOrStdout(), current.cat)
		},
	}
}

func writeModels(w io.Writer, cat *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tYEAR\tASSET\tPROFILE\tPAINT RULE")
	for _, d := range cat.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", d.ID, d.DisplayName, d.Year, d.AssetPath, d.Profile, d.Rule)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "COLOR\tHEX")
	for _, c := range cat.Palette() {
		mark := ""
		if c == cat.DefaultColor() {
			mark = " (default)"
		}
		fmt.Fprintf(tw, "%s%s\t%s\n", c.Name, mark, c.Hex)
	}
	return tw.Flush()
}

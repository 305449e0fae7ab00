package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/specialistvlad/enginecore/internal/app"
	"github.com/spf13/cobra"
)

func newModulesCommand(outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the compiled-in modules",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(outW, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tVERSION\tAUTHOR")
			for _, m := range app.CoreModules() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ModID, m.DisplayName(), m.ModVersion, m.ModAuthor)
			}
			return tw.Flush()
		},
	}
}

func newVersionCommand(outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the enginecore version",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(outW, "enginecore %s\n", Version)
		},
	}
}

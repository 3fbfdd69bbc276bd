// Command dashctl renders dashboard views from a marketing data bundle on the
// terminal.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dashctl",
		Short:        "Inspect marketing dashboard views",
		SilenceUsage: true,
	}
	root.AddCommand(newReportCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package store

import (
	"github.com/spf13/cobra"
)

// NewCommand returns the "store" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect and fill analysis bundles",
		Long: `Inspect what an analysis bundle holds, or import records into it.

The bundle is --input itself, or the configured bundle name inside the
--input directory (the working directory by default).`,
	}

	cmd.PersistentFlags().StringP("input", "i", "", "Analysis bundle or the directory holding it")

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ImportCommand())

	return cmd
}

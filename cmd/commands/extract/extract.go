package extract

import (
	"fmt"
	"strings"

	"r2ta/internal/analysis"
	"r2ta/internal/config"
	"r2ta/internal/database"
	"r2ta/internal/extract"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewCommand returns the "extract" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Export one element's samples as JSON",
		Long: `Extract the samples stored for one element of an analysis bundle and write
them to --output as a JSON array of integers.

Properties: ` + strings.Join(analysis.Names(), ", ") + `

Examples:
  r2ta extract --property callback-duration -o durations.json \
      --element-id 'namespace=/talker&interface=/chatter'`,
		Args:         cobra.NoArgs,
		RunE:         runExtract,
		SilenceUsage: true,
	}

	var property analysis.Property
	cmd.Flags().StringP("element-id", "n", "", "Element to extract, e.g. 'namespace=/talker&interface=/chatter'")
	cmd.Flags().Var(&property, "property", "Property to extract ("+strings.Join(analysis.Names(), ", ")+")")
	cmd.Flags().StringP("input", "i", "", "Analysis bundle or the directory holding it")
	cmd.Flags().StringP("output", "o", "", "JSON file to write")

	cmd.MarkFlagRequired("element-id")
	cmd.MarkFlagRequired("property")
	cmd.MarkFlagRequired("output")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	elementID, _ := cmd.Flags().GetString("element-id")
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	property := *cmd.Flags().Lookup("property").Value.(*analysis.Property)

	bundle, err := database.ResolveBundle(input, cfg.Bundle())
	if err != nil {
		return err
	}
	if err := database.CheckBundle(bundle); err != nil {
		return err
	}

	table, data, err := extract.Extract(cmd.Context(), bundle, elementID, property)
	if err != nil {
		return err
	}
	if err := data.Export(output); err != nil {
		return err
	}

	zap.L().Info("extracted samples",
		zap.String("table", table),
		zap.Int("samples", data.Len()),
		zap.String("path", output),
	)
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

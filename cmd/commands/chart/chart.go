package chart

import (
	"fmt"
	"os"
	"strings"

	"r2ta/internal/analysis"
	"r2ta/internal/charting"
	"r2ta/internal/config"
	"r2ta/internal/database"
	"r2ta/internal/extract"
	"r2ta/internal/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// NewCommand returns the "chart" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart <histogram|scatter>",
		Short: "Chart one element's samples",
		Long: `Chart the samples stored for one element of an analysis bundle.

The image is written as <element>_<property>_<plot>_<size>.<format> into the
--output directory (the working directory by default) and its path is
printed. An existing image is kept unless --clean is given. The text format
prints a terminal preview instead of writing a file.

Properties: ` + strings.Join(analysis.Names(), ", ") + `

Examples:
  r2ta chart histogram --property callback-duration \
      --element-id 'namespace=/talker&interface=/chatter'
  r2ta chart scatter --property messages-latency -o charts --output-format png \
      --element-id 'source_namespace=/talker&target_namespace=/listener&topic=/chatter'`,
		Args:         cobra.ExactArgs(1),
		ValidArgs:    []string{"histogram", "scatter"},
		RunE:         runChart,
		SilenceUsage: true,
	}

	var property analysis.Property
	var format charting.Format
	cmd.Flags().StringP("element-id", "n", "", "Element to chart, e.g. 'namespace=/talker&interface=/chatter'")
	cmd.Flags().Var(&property, "property", "Property to chart ("+strings.Join(analysis.Names(), ", ")+")")
	cmd.Flags().StringP("input", "i", "", "Analysis bundle or the directory holding it")
	cmd.Flags().StringP("output", "o", "", "Output directory or file (default: working directory)")
	cmd.Flags().Int("size", 0, "Image width and height in pixels (default from config, 800)")
	cmd.Flags().Var(&format, "output-format", "Output format: svg, png or text (default from config, svg)")
	cmd.Flags().BoolP("clean", "c", false, "Re-render even if the image already exists")
	cmd.Flags().IntP("bins", "b", 0, "Histogram bin count (default from config, 50)")

	cmd.MarkFlagRequired("element-id")
	cmd.MarkFlagRequired("property")

	return cmd
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	elementID, _ := cmd.Flags().GetString("element-id")
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	clean, _ := cmd.Flags().GetBool("clean")
	property := *cmd.Flags().Lookup("property").Value.(*analysis.Property)

	format := charting.Format(cfg.Format())
	if f := cmd.Flags().Lookup("output-format"); f.Changed {
		format = *f.Value.(*charting.Format)
	}
	size := cfg.Size()
	if cmd.Flags().Changed("size") {
		size, _ = cmd.Flags().GetInt("size")
	}
	// Unset stays 0 so the file name reads histogram_0 for default binning.
	bins := cfg.HistogramBins
	if cmd.Flags().Changed("bins") {
		bins, _ = cmd.Flags().GetInt("bins")
	}

	plot, err := charting.ParsePlot(args[0], bins)
	if err != nil {
		return err
	}

	bundle, err := database.ResolveBundle(input, cfg.Bundle())
	if err != nil {
		return err
	}
	if err := database.CheckBundle(bundle); err != nil {
		return err
	}

	if format == charting.FormatText {
		_, data, err := extract.Extract(cmd.Context(), bundle, elementID, property)
		if err != nil {
			return err
		}
		preview, err := charting.Preview(data, property, plot, terminalWidth())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), preview)
		return nil
	}

	name := fmt.Sprintf("%s_%s_%s_%d.%s",
		util.SanitizeFileName(elementID), property.Descriptor(), plot.Slug(), size, format)
	path, err := util.ResolvePath(output, name)
	if err != nil {
		return err
	}

	if util.FileExists(path) && !clean {
		zap.L().Info("chart already rendered, skipping", zap.String("path", path))
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	_, data, err := extract.Extract(cmd.Context(), bundle, elementID, property)
	if err != nil {
		return err
	}
	req := charting.Request{Property: property, Plot: plot, Size: size, Format: format}
	if err := charting.Render(path, data, req); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal.
func terminalWidth() int {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

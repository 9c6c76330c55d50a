package store

import (
	"fmt"
	"os"
	"strings"

	"r2ta/internal/analysis"
	"r2ta/internal/blobstore"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ImportCommand returns the "store import" subcommand.
func ImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import records from YAML or JSON files",
		Long: `Import a list of records for one property into the bundle, creating the
bundle if it does not exist. Records replace earlier ones with the same
element.

Node records carry namespace, interface and an optional interface_type;
channel records carry source_namespace, target_namespace and topic. The
samples field is named after the property:

  callback-duration    durations
  activations-delay    activation_delays
  publications-delay   publication_delays
  messages-delay       message_delays
  messages-latency     latencies

Examples:
  r2ta store import --property callback-duration durations.yaml`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runImport,
		SilenceUsage: true,
	}

	var property analysis.Property
	cmd.Flags().Var(&property, "property", "Property the records hold ("+strings.Join(analysis.Names(), ", ")+")")
	cmd.MarkFlagRequired("property")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	property := *cmd.Flags().Lookup("property").Value.(*analysis.Property)

	var records []analysis.Record
	for _, name := range args {
		rs, err := decodeFile(property, name)
		if err != nil {
			return err
		}
		records = append(records, rs...)
	}

	path, err := bundlePath(cmd)
	if err != nil {
		return err
	}
	store, err := blobstore.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := analysis.Save(cmd.Context(), store, property, records); err != nil {
		return err
	}

	zap.L().Info("imported records",
		zap.Stringer("property", property),
		zap.Int("records", len(records)),
		zap.String("path", path),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s record(s) into %s\n", len(records), property, path)
	return nil
}

func decodeFile(p analysis.Property, name string) ([]analysis.Record, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	records, err := analysis.DecodeRecords(p, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return records, nil
}

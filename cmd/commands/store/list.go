package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"r2ta/internal/analysis"
	"r2ta/internal/blobstore"
	"r2ta/internal/config"
	"r2ta/internal/database"
	"r2ta/internal/identifier"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// ListCommand returns the "store list" subcommand.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the properties or elements stored in a bundle",
		Long: `Without --property, list every property stored in the bundle with its
element count. With --property, list the elements stored for it along with
the identifier to pass to --element-id.

Examples:
  r2ta store list
  r2ta store list --property messages-latency -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	var property analysis.Property
	cmd.Flags().Var(&property, "property", "List the elements of this property ("+strings.Join(analysis.Names(), ", ")+")")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

type propertySummary struct {
	Property string `json:"property"`
	Table    string `json:"table"`
	Elements int64  `json:"elements"`
}

type elementSummary struct {
	ElementID string `json:"element_id"`
	Identity  string `json:"identity"`
	Samples   int    `json:"samples"`
}

func runList(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unknown output format %q (valid: table, json)", output)
	}

	store, err := openBundle(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if f := cmd.Flags().Lookup("property"); f.Changed {
		return listElements(cmd, store, *f.Value.(*analysis.Property), output)
	}

	var summaries []propertySummary
	for _, p := range analysis.Properties {
		n, err := store.Count(cmd.Context(), p.TableName())
		if errors.Is(err, blobstore.ErrNoSuchAnalysis) {
			continue
		}
		if err != nil {
			return err
		}
		summaries = append(summaries, propertySummary{Property: p.String(), Table: p.TableName(), Elements: n})
	}

	if output == "json" {
		if summaries == nil {
			summaries = []propertySummary{}
		}
		return printJSON(cmd, summaries)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No analyses found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PROPERTY\tTABLE\tELEMENTS")
	fmt.Fprintln(w, "--------\t-----\t--------")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Property, s.Table, humanize.Comma(s.Elements))
	}
	return w.Flush()
}

func listElements(cmd *cobra.Command, store *blobstore.Store, p analysis.Property, output string) error {
	records, err := analysis.Load(cmd.Context(), store, p)
	if err != nil {
		return err
	}

	elements := make([]elementSummary, 0, len(records))
	for _, r := range records {
		id, err := identifier.FromRecord(r)
		if err != nil {
			return err
		}
		elements = append(elements, elementSummary{
			ElementID: identifier.Encode(id),
			Identity:  r.Identity(),
			Samples:   len(r.Samples()),
		})
	}

	if output == "json" {
		return printJSON(cmd, elements)
	}
	if len(elements) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s elements found.\n", p)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ELEMENT ID\tSAMPLES")
	fmt.Fprintln(w, "----------\t-------")
	for _, e := range elements {
		fmt.Fprintf(w, "%s\t%s\n", e.ElementID, humanize.Comma(int64(e.Samples)))
	}
	return w.Flush()
}

// printJSON encodes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openBundle opens the existing bundle named by --input.
func openBundle(cmd *cobra.Command) (*blobstore.Store, error) {
	path, err := bundlePath(cmd)
	if err != nil {
		return nil, err
	}
	if err := database.CheckBundle(path); err != nil {
		return nil, err
	}
	return blobstore.Open(path)
}

func bundlePath(cmd *cobra.Command) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	input, _ := cmd.Flags().GetString("input")
	return database.ResolveBundle(input, cfg.Bundle())
}

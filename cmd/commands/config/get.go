package config

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"r2ta/internal/config"
	"r2ta/internal/util"

	"github.com/spf13/cobra"
)

// GetCommand returns the "config get" command.
func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Long: "Get a persistent configuration value.\n\n" +
			"Without a key, every setting is listed with its effective value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  r2ta config get                  # list all settings\n" +
			"  r2ta config get chart-size       # print a single value",
		Args:         cobra.MaximumNArgs(1),
		RunE:         runGet,
		SilenceUsage: true,
	}

	cmd.Flags().String("key", "", "Configuration key to fetch (same as the positional argument)")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	keyFlag, _ := cmd.Flags().GetString("key")
	if len(args) == 1 {
		keyFlag = args[0]
	}
	keyFlag = strings.TrimSpace(keyFlag)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if keyFlag == "" {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, spec := range config.Keys {
			value := spec.Get(cfg)
			if value == "" {
				value = fmt.Sprintf("(not set, default %s)", spec.Default)
			}
			fmt.Fprintf(w, "%s:\t%s\n", spec.Name, value)
		}
		return w.Flush()
	}

	spec := config.Lookup(util.NormalizeKey(keyFlag))
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", keyFlag, strings.Join(config.KeyNames(), ", "))
	}

	value := spec.Get(cfg)
	if value == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "not set (default %s)\n", spec.Default)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), value)
	}
	return nil
}

package config

import (
	"r2ta/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage r2ta configuration",
		Long: "View and modify persistent r2ta settings. Command-line flags override them.\n\n" +
			"Configuration is stored at ~/.config/r2ta/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}

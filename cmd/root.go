package cmd

import (
	"fmt"
	"os"

	"r2ta/cmd/commands/chart"
	cfgcmd "r2ta/cmd/commands/config"
	"r2ta/cmd/commands/extract"
	"r2ta/cmd/commands/store"
	"r2ta/internal/config"
	"r2ta/internal/logging"
	"r2ta/internal/tui/styles"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "r2ta",
		Short: "Chart timing statistics of analysed ROS 2 traces",
		Long: `r2ta reads the analysis bundle produced from a ROS 2 trace and turns the
timing statistics stored per node interface or channel into charts.

Quick start:
  r2ta store list                          # What does the bundle hold?
  r2ta chart histogram --property callback-duration \
      --element-id 'namespace=/talker&interface=/chatter'
  r2ta extract --property messages-latency -o latency.json \
      --element-id 'source_namespace=/talker&target_namespace=/listener&topic=/chatter'`,
		PersistentPreRunE: setupLogging,
		SilenceErrors:     true,
	}

	cmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Only log errors")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	cmd.AddCommand(chart.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(extract.NewCommand())
	cmd.AddCommand(store.NewCommand())

	return cmd
}

// setupLogging installs the global logger for the command about to run.
func setupLogging(cmd *cobra.Command, args []string) error {
	explicit, _ := cmd.Flags().GetString("log-level")
	verbose, _ := cmd.Flags().GetCount("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	configured := ""
	if cfg, err := config.Load(); err == nil {
		configured = cfg.LogLevel
	}

	level, err := logging.Resolve(explicit, verbose, quiet, configured)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logging.New(cmd.ErrOrStderr(), level))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	_ = zap.L().Sync()
	if err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "%s %v\n", styles.ErrorText.Render("Error:"), err)
		os.Exit(1)
	}
}

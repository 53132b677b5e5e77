package main

import (
	"fmt"
	"os"

	"github.com/aretw0/synthmc/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "synthmc",
	Short: "synthmc runs the synth_mc synthesis script",
	Long: `synthmc maps a design onto Minecraft logic gates with yosys and the MCPNR
technology library. The script is split into labelled stages that can be run
in part with -run from[:to].`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("report-dir", "", "Directory for run reports (default .synthmc/runs)")
	rootCmd.PersistentFlags().String("redis-url", "", "Store run reports in Redis instead of files")
	rootCmd.PersistentFlags().Bool("debug", false, "Log stage and step transitions to stderr")
	rootCmd.PersistentFlags().String("profile", "", "YAML file with default synth_mc options")
}

// engineOptions reads the flags shared by every command that builds an engine.
func engineOptions(cmd *cobra.Command) cli.EngineOptions {
	flags := cmd.Flags()
	reportDir, _ := flags.GetString("report-dir")
	redisURL, _ := flags.GetString("redis-url")
	debug, _ := flags.GetBool("debug")

	opts := cli.EngineOptions{ReportDir: reportDir, RedisURL: redisURL, Debug: debug}
	if flags.Lookup("workdir") != nil {
		opts.Workdir, _ = flags.GetString("workdir")
		opts.Yosys, _ = flags.GetString("yosys")
		opts.Checkpoint, _ = flags.GetString("checkpoint")
		opts.Design, _ = flags.GetString("design")
		opts.ToolsPath, _ = flags.GetString("tools")
	}
	return opts
}

// addHostFlags registers the flags that configure the yosys host.
func addHostFlags(cmd *cobra.Command) {
	cmd.Flags().String("yosys", "", "yosys binary (default from tools file, then yosys)")
	cmd.Flags().StringP("workdir", "C", ".", "Working directory for yosys and the checkpoint")
	cmd.Flags().String("checkpoint", "", "RTLIL checkpoint carried between steps (default design.il)")
	cmd.Flags().String("design", "", "RTLIL design read before the first step")
	cmd.Flags().String("tools", "", "Tools file routing passes to other executables (default <workdir>/tools.yaml)")
}

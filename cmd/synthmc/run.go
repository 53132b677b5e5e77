package main

import (
	"github.com/aretw0/synthmc/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] -- [synth_mc options] [selection]",
	Short: "Run the synth_mc script",
	Long: `Runs the synth_mc script against the design in the working directory.
Everything after -- is passed to synth_mc, for example:

  synthmc run -- -flatten -top cpu -run coarse:fine`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, _ := cmd.Flags().GetString("profile")
		emit, _ := cmd.Flags().GetString("emit")
		metricsFile, _ := cmd.Flags().GetString("metrics-file")
		jsonMode, _ := cmd.Flags().GetBool("json")
		quiet, _ := cmd.Flags().GetBool("quiet")

		opts := cli.RunOptions{
			EngineOptions: engineOptions(cmd),
			Tokens:        args,
			Profile:       profile,
			MetricsFile:   metricsFile,
			JSON:          jsonMode,
			Quiet:         quiet,
			Stdout:        cmd.OutOrStdout(),
		}
		opts.Emit = emit

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Execute(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	addHostFlags(runCmd)
	runCmd.Flags().String("emit", "", "Write the steps to a yosys script instead of running them")
	runCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	runCmd.Flags().Bool("json", false, "Print the run report as JSON")
	runCmd.Flags().BoolP("quiet", "q", false, "Print nothing but errors")
}

package main

import (
	"github.com/aretw0/synthmc/internal/cli"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [flags] -- [synth_mc options]",
	Short: "Print the steps a run would execute",
	Long:  `Resolves the options and the -run range and prints the command lines in order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, _ := cmd.Flags().GetString("profile")
		return cli.Plan(cli.DescribeOptions{
			Tokens:  args,
			Profile: profile,
			Stdout:  cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}

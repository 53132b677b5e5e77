package main

import (
	"github.com/aretw0/synthmc/internal/cli"
	"github.com/spf13/cobra"
)

// describeCmd prints the script without running it.
var describeCmd = &cobra.Command{
	Use:     "describe [flags] -- [synth_mc options]",
	Aliases: []string{"help-script"},
	Short:   "Print the synth_mc script",
	Long: `Prints every stage and step of the synth_mc script as resolved against the
given options. Steps the options leave out are marked [skipped]. Nothing is executed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, _ := cmd.Flags().GetString("profile")
		format, _ := cmd.Flags().GetString("format")
		return cli.Describe(cli.DescribeOptions{
			Tokens:  args,
			Profile: profile,
			Format:  format,
			Stdout:  cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, json, mermaid or markdown")
}

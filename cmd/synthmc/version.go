package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/synthmc"
	"github.com/aretw0/synthmc/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of synthmc",
	Run: func(cmd *cobra.Command, args []string) {
		short, _ := cmd.Flags().GetBool("short")
		if short {
			fmt.Fprintf(cmd.OutOrStdout(), "synthmc version %s\n", strings.TrimSpace(synthmc.Version))
			return
		}
		tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(synthmc.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version line")
}

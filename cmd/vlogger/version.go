package main

import (
	"fmt"

	"github.com/aretw0/vlogger"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vlogger",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vlogger version %s (api %s)\n", vlogger.Version, vlogger.APIVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

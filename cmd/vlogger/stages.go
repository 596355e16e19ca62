package main

import (
	"fmt"

	"github.com/aretw0/vlogger/internal/presentation/graph"
	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/spf13/cobra"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the pipeline stages",
	Long:  `Prints the stages in execution order, or a Mermaid diagram (graph LR) with --mermaid.`,
	Run: func(cmd *cobra.Command, args []string) {
		stages := domain.Pipeline()
		if mermaid, _ := cmd.Flags().GetBool("mermaid"); mermaid {
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(stages, nil))
			return
		}
		for i, s := range stages {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, s)
		}
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
	stagesCmd.Flags().Bool("mermaid", false, "Print a Mermaid diagram instead of a list")
}

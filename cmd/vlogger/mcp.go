package main

import (
	"context"
	"log"
	"os"

	"github.com/aretw0/vlogger"
	"github.com/aretw0/vlogger/internal/cli"
	"github.com/aretw0/vlogger/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the pipeline as the generate_itinerary tool over stdio,
so AI agents can plan trips through vlogger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Metrics = false

		rt, err := cli.Build(context.Background(), cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger.Info("Starting vlogger MCP Server (Stdio)...")
		return mcp.NewServer(rt.Engine, vlogger.Version, logger).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

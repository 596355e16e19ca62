package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/vlogger"
	"github.com/aretw0/vlogger/internal/cli"
	"github.com/aretw0/vlogger/internal/presentation/tui"
	api "github.com/aretw0/vlogger/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes POST /generate and the supporting endpoints (/runs/{id}, /stages, /health, /info, /metrics).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := cli.Build(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		opts := []api.Option{
			api.WithLogger(logger),
			api.WithCORSOrigins(cfg.CORSOrigins...),
			api.WithVersion(vlogger.Version),
		}
		if rt.Metrics != nil {
			opts = append(opts, api.WithMetricsHandler(promhttp.Handler()))
		}
		handler, err := api.NewHandler(rt.Engine, opts...)
		if err != nil {
			return fmt.Errorf("error building handler: %w", err)
		}

		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
		if err != nil {
			return err
		}

		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			tui.PrintBanner(os.Stdout)
		}
		logger.Info("Starting vlogger", "version", vlogger.Version, "demo_mode", rt.Engine.DemoMode(), "archive", cfg.Archive)
		return cli.Serve(ctx, ln, handler, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config, default 8000)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/vlogger/internal/config"
	"github.com/aretw0/vlogger/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vlogger",
	Short: "vlogger plans travel itineraries with a chain of LLM agents",
	Long: `vlogger runs a fixed pipeline of five agents (explorer, foodie, guide, vlogger, evaluator)
that turns a location into attractions, foods, a day-by-day plan, vlog narration and a score.`,
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
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (defaults to $"+config.EnvConfigFile+")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
}

// loadConfig reads the layered configuration and builds the logger it asks for.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(level)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

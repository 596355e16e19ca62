package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/vlogger/internal/cli"
	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [location]",
	Short: "Plan an itinerary from the command line",
	Long: `Runs the pipeline once and prints the itinerary.
Output is rendered Markdown on a terminal, plain Markdown when piped, or JSON with --json.`,
	Example: `  vlogger generate "Lisbon" --duration 2 --style relaxed
  vlogger generate "Tokyo" --pref budget=low --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		// Metrics are only exposed by serve.
		cfg.Metrics = false

		pairs, _ := cmd.Flags().GetStringArray("pref")
		prefs, err := cli.ParsePrefs(pairs)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("duration") {
			if prefs == nil {
				prefs = domain.Prefs{}
			}
			prefs[domain.PrefDuration], _ = cmd.Flags().GetInt("duration")
		}
		if cmd.Flags().Changed("style") {
			if prefs == nil {
				prefs = domain.Prefs{}
			}
			prefs[domain.PrefStyle], _ = cmd.Flags().GetString("style")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := cli.Build(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		jsonMode, _ := cmd.Flags().GetBool("json")
		showGraph, _ := cmd.Flags().GetBool("graph")
		width, _ := cmd.Flags().GetInt("width")

		return cli.Generate(ctx, rt.Engine, cli.GenerateOptions{
			Location: args[0],
			Prefs:    prefs,
			JSON:     jsonMode,
			Graph:    showGraph,
			Width:    width,
		}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Int("duration", domain.DefaultDuration, "Trip length in days")
	generateCmd.Flags().String("style", domain.DefaultStyle, "Narration style")
	generateCmd.Flags().StringArray("pref", nil, "Extra preference as key=value (repeatable)")
	generateCmd.Flags().Bool("json", false, "Print the result as JSON")
	generateCmd.Flags().Bool("graph", false, "Append a Mermaid diagram of the executed stages")
	generateCmd.Flags().Int("width", 100, "Word wrap width for rendered Markdown")
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/vlogger"
	"github.com/aretw0/vlogger/internal/presentation/graph"
	"github.com/aretw0/vlogger/internal/presentation/tui"
	"github.com/aretw0/vlogger/pkg/domain"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// GenerateOptions contains the configuration for the generate command.
type GenerateOptions struct {
	Location string
	Prefs    domain.Prefs
	JSON     bool
	Graph    bool
	Width    int
}

// Generate runs the pipeline once and writes the itinerary to out.
// Markdown is rendered with glamour only when out is a terminal.
func Generate(ctx context.Context, engine *vlogger.Engine, opts GenerateOptions, out io.Writer) error {
	state, err := engine.Run(ctx, domain.Request{Location: opts.Location, UserPrefs: opts.Prefs})
	if err != nil {
		return err
	}
	result := state.Result()

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	var sb strings.Builder
	sb.WriteString(tui.ItineraryMarkdown(result, state.Improvements))
	if opts.Graph {
		sb.WriteString("\n## Pipeline\n\n```mermaid\n")
		sb.WriteString(graph.GenerateMermaid(engine.Stages(), &graph.Overlay{
			Visited: state.History,
			Current: state.Stage,
		}))
		sb.WriteString("```\n")
	}

	md := sb.String()
	if isTerminal(out) {
		render, err := tui.NewRenderer(opts.Width)
		if err != nil {
			return fmt.Errorf("error creating renderer: %w", err)
		}
		if md, err = render(md); err != nil {
			return fmt.Errorf("error rendering itinerary: %w", err)
		}
	}
	_, err = io.WriteString(out, md)
	return err
}

// ParsePrefs turns key=value pairs into preferences.
// Values are decoded as YAML scalars, so duration=3 yields a number.
func ParsePrefs(pairs []string) (domain.Prefs, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	prefs := make(domain.Prefs, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid preference %q: expected key=value", pair)
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil || value == nil {
			value = raw
		}
		prefs[key] = value
	}
	return prefs, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

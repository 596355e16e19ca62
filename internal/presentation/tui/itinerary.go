package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/vlogger/pkg/domain"
)

// ItineraryMarkdown lays a finished run out as a Markdown document.
// improvements is optional and only shown when non-empty.
func ItineraryMarkdown(r *domain.Result, improvements string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", r.Location)
	fmt.Fprintf(&sb, "**Score:** %.1f / 10\n\n", r.EvaluationScore)

	if len(r.UserPrefs) > 0 {
		keys := make([]string, 0, len(r.UserPrefs))
		for k := range r.UserPrefs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("## Preferences\n\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "- %s: %v\n", k, r.UserPrefs[k])
		}
		sb.WriteString("\n")
	}

	if len(r.Attractions) > 0 {
		sb.WriteString("## Attractions\n\n")
		for _, a := range r.Attractions {
			fmt.Fprintf(&sb, "- **%s** _(%s)_: %s\n", a.Name, a.Category, a.Description)
		}
		sb.WriteString("\n")
	}

	if len(r.Foods) > 0 {
		sb.WriteString("## Food\n\n")
		for _, f := range r.Foods {
			fmt.Fprintf(&sb, "- **%s** _(%s)_: %s\n", f.Name, f.Type, f.Description)
		}
		sb.WriteString("\n")
	}

	for i, day := range r.Itinerary {
		fmt.Fprintf(&sb, "## Day %d\n\n", day.Day)
		if len(day.Activities) > 0 {
			sb.WriteString("| Time | Activity | Details |\n|---|---|---|\n")
			for _, a := range day.Activities {
				fmt.Fprintf(&sb, "| %s | %s | %s |\n", cell(a.Time), cell(a.Item), cell(a.Details))
			}
			sb.WriteString("\n")
		}
		if i < len(r.Narration) {
			fmt.Fprintf(&sb, "> %s\n\n", r.Narration[i])
		}
	}

	// Narration without a matching day
	for i := len(r.Itinerary); i < len(r.Narration); i++ {
		fmt.Fprintf(&sb, "> %s\n\n", r.Narration[i])
	}

	if improvements != "" {
		fmt.Fprintf(&sb, "## Improvements\n\n%s\n", improvements)
	}

	return sb.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

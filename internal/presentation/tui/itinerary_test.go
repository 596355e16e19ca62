package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/vlogger/internal/presentation/tui"
	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItineraryMarkdown(t *testing.T) {
	r := domain.DemoResult("New York", domain.Prefs{"style": "calm"})
	r.Narration = append(r.Narration, "Bonus reel.")

	md := tui.ItineraryMarkdown(r, "Add a museum.")

	assert.Contains(t, md, "# New York\n")
	assert.Contains(t, md, "**Score:** 8.5 / 10")
	assert.Contains(t, md, "- style: calm")
	assert.Contains(t, md, "- **Central Park** _(Park)_: Iconic urban park")
	assert.Contains(t, md, "- **Bagel** _(Street Food)_: Classic breakfast")
	assert.Contains(t, md, "## Day 1")
	assert.Contains(t, md, "| Morning | Central Park Walk | Start at the south entrance |")
	assert.Contains(t, md, "> Kicked off the day")
	assert.Contains(t, md, "> Bonus reel.")
	assert.Contains(t, md, "## Improvements\n\nAdd a museum.")
}

func TestItineraryMarkdown_Empty(t *testing.T) {
	r := &domain.Result{Location: "Nowhere"}
	md := tui.ItineraryMarkdown(r, "")

	assert.Contains(t, md, "# Nowhere")
	assert.NotContains(t, md, "## Attractions")
	assert.NotContains(t, md, "## Improvements")
}

func TestRenderer(t *testing.T) {
	render, err := tui.NewRenderer(60)
	require.NoError(t, err)

	out, err := render("# Title\n\nHello")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/")
}

package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the startup banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`        _                             `, "#22d3ee"},
		{` __   _| | ___   __ _  __ _  ___ _ __ `, "#38bdf8"},
		{` \ \ / / |/ _ \ / _' |/ _' |/ _ \ '__|`, "#60a5fa"},
		{`  \ V /| | (_) | (_| | (_| |  __/ |   `, "#818cf8"},
		{`   \_/ |_|\___/ \__, |\__, |\___|_|   `, "#a78bfa"},
		{`                |___/ |___/           `, "#c084fc"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

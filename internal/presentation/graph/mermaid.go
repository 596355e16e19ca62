package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/vlogger/pkg/domain"
)

// Overlay contains run data to visualize on the diagram.
type Overlay struct {
	Visited []domain.Stage
	Current domain.Stage
}

// GenerateMermaid produces a Mermaid flowchart of the pipeline.
// The entry stage is a ((Circle)), the sink a [(Stadium)] and every other stage a [Rectangle].
// Overlay styles (visited/current) are applied when overlay is non-nil.
func GenerateMermaid(stages []domain.Stage, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, stage := range stages {
		opener, closer := "[", "]"
		if stage == domain.EntryStage {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", stage, opener, stage, closer))
	}
	sb.WriteString(fmt.Sprintf("    %s([\"%s\"])\n", domain.StageDone, domain.StageDone))

	for _, stage := range stages {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", stage, stage.Next()))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.Stage]bool)
		for _, stage := range overlay.Visited {
			if !seen[stage] && stage.Valid() {
				seen[stage] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", stage))
			}
		}
		if overlay.Current != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", overlay.Current))
		}
	}

	return sb.String()
}

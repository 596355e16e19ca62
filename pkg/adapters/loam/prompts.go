// Package loam loads stage prompt overrides from a Loam document repository.
//
// Each document overrides one stage. The document body is the system prompt and
// the optional "human" front matter key replaces the human prompt:
//
//	---
//	human: Suggest street food for {{.location}}
//	---
//	You are a Foodie Agent. Return JSON: [{"name": str, "description": str, "type": str}]
//
// The stage is taken from the "stage" key, or from the file name (foodie.md).
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/aretw0/vlogger/pkg/prompt"
)

// PromptMetadata is the front matter of a prompt document.
type PromptMetadata struct {
	Stage string `json:"stage" mapstructure:"stage"`
	Human string `json:"human" mapstructure:"human"`
}

// Loader adapts a Loam repository to a prompt catalog.
type Loader struct {
	Repo *loam.TypedRepository[PromptMetadata]
}

// New creates a new Loam prompt loader.
func New(repo *loam.TypedRepository[PromptMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only repository rooted at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve prompts dir: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open prompts dir %s: %w", absPath, err)
	}
	return New(loam.NewTypedRepository[PromptMetadata](repo)), nil
}

// Load returns base with every stage found in the repository overridden.
// Documents whose name is not a stage are ignored unless they declare one explicitly.
func (l *Loader) Load(ctx context.Context, base prompt.Catalog) (prompt.Catalog, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	overrides := make(prompt.Catalog)
	seen := make(map[domain.Stage]string)

	for _, doc := range docs {
		stage := domain.Stage(doc.Data.Stage)
		if stage == "" {
			stage = domain.Stage(trimExtension(filepath.Base(doc.ID)))
			if !stage.Valid() || stage.Terminal() {
				continue
			}
		} else if !stage.Valid() || stage.Terminal() {
			return nil, fmt.Errorf("prompt %s declares unknown stage %q", doc.ID, stage)
		}

		if existing, ok := seen[stage]; ok {
			return nil, fmt.Errorf("collision detected: stage '%s' is defined in both '%s' and '%s'", stage, existing, doc.ID)
		}
		seen[stage] = doc.ID

		system := strings.TrimSpace(doc.Content)
		human := strings.TrimSpace(doc.Data.Human)
		if fallback, ok := base[stage]; ok {
			if system == "" {
				system = fallback.System()
			}
			if human == "" {
				human = fallback.Human()
			}
		}
		overrides[stage] = prompt.New(system, human)
	}

	return base.Merge(overrides), nil
}

func trimExtension(id string) string {
	return strings.TrimSuffix(id, filepath.Ext(id))
}

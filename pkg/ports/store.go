package ports

import (
	"context"

	"github.com/aretw0/vlogger/pkg/domain"
)

// RunStore archives finished results.
// It is never consulted to short-circuit a new run.
type RunStore interface {
	// Save persists the result under the given run ID.
	Save(ctx context.Context, runID string, result *domain.Result) error

	// Load retrieves a result.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (*domain.Result, error)

	// Delete removes a result.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of archived runs.
	List(ctx context.Context) ([]string, error)
}

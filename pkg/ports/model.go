package ports

import (
	"context"

	"github.com/aretw0/vlogger/pkg/domain"
)

// Model is the language model behind every stage.
// Implementations must be safe for concurrent use.
type Model interface {
	// Generate performs a single synchronous completion.
	// Any error aborts the current run.
	Generate(ctx context.Context, req domain.ModelRequest) (domain.Reply, error)
}

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc func(ctx context.Context, req domain.ModelRequest) (domain.Reply, error)

// Generate calls f(ctx, req).
func (f ModelFunc) Generate(ctx context.Context, req domain.ModelRequest) (domain.Reply, error) {
	return f(ctx, req)
}

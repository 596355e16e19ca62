package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/vlogger/pkg/domain"
)

// Model implements ports.Model with scripted replies per stage.
// It backs demo wiring and tests. Safe for concurrent use.
type Model struct {
	mu      sync.Mutex
	replies map[domain.Stage]domain.Reply
	errs    map[domain.Stage]error
	calls   []domain.ModelRequest
}

// NewModel creates a model with no scripted replies.
func NewModel() *Model {
	return &Model{
		replies: make(map[domain.Stage]domain.Reply),
		errs:    make(map[domain.Stage]error),
	}
}

// On scripts the reply returned for a stage.
func (m *Model) On(stage domain.Stage, reply domain.Reply) *Model {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies[stage] = reply
	delete(m.errs, stage)
	return m
}

// OnText scripts a text reply for a stage.
func (m *Model) OnText(stage domain.Stage, text string) *Model {
	return m.On(stage, domain.TextReply(text))
}

// Fail scripts an error for a stage.
func (m *Model) Fail(stage domain.Stage, err error) *Model {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[stage] = err
	return m
}

// Generate returns the scripted reply of req.Stage.
func (m *Model) Generate(ctx context.Context, req domain.ModelRequest) (domain.Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if err := ctx.Err(); err != nil {
		return domain.Reply{}, err
	}
	if err, ok := m.errs[req.Stage]; ok {
		return domain.Reply{}, err
	}
	reply, ok := m.replies[req.Stage]
	if !ok {
		return domain.Reply{}, fmt.Errorf("no scripted reply for stage %q", req.Stage)
	}
	return reply, nil
}

// Calls returns the requests received so far, in order.
func (m *Model) Calls() []domain.ModelRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ModelRequest(nil), m.calls...)
}

// CalledStages returns the stage of every request received so far.
func (m *Model) CalledStages() []domain.Stage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Stage, 0, len(m.calls))
	for _, c := range m.calls {
		out = append(out, c.Stage)
	}
	return out
}

// Package gemini adapts the Google Gen AI SDK to ports.Model.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/vlogger/pkg/domain"
	"google.golang.org/genai"
)

const (
	// DefaultModel is used when no model name is configured.
	DefaultModel = "gemini-1.5-flash"
	// DefaultTemperature matches the sampling used by every stage.
	DefaultTemperature float32 = 0.7
)

// ErrEmptyResponse is returned when the API answers without any text part.
var ErrEmptyResponse = errors.New("gemini: empty response")

// ContentGenerator is the subset of *genai.Models used by the adapter.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Model implements ports.Model on top of the Gemini API.
type Model struct {
	models      ContentGenerator
	name        string
	temperature float32
}

// Option configures the Model.
type Option func(*Model)

// WithModelName overrides DefaultModel.
func WithModelName(name string) Option {
	return func(m *Model) {
		if name != "" {
			m.name = name
		}
	}
}

// WithTemperature overrides DefaultTemperature.
func WithTemperature(t float32) Option {
	return func(m *Model) {
		m.temperature = t
	}
}

// New creates a Gemini client authenticated with apiKey.
// An empty key lets the SDK fall back to GOOGLE_API_KEY / GEMINI_API_KEY.
func New(ctx context.Context, apiKey string, opts ...Option) (*Model, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	return NewFromGenerator(client.Models, opts...), nil
}

// NewFromGenerator wraps an existing generator.
func NewFromGenerator(models ContentGenerator, opts ...Option) *Model {
	m := &Model{
		models:      models,
		name:        DefaultModel,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the configured model name.
func (m *Model) Name() string {
	return m.name
}

// Generate sends the rendered messages and returns the concatenated text of the first candidate.
func (m *Model) Generate(ctx context.Context, req domain.ModelRequest) (domain.Reply, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](m.temperature),
	}

	var (
		system   []string
		contents []*genai.Content
	)
	for _, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleSystem:
			system = append(system, msg.Content)
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}

	resp, err := m.models.GenerateContent(ctx, m.name, contents, cfg)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("gemini: %w", err)
	}

	text, ok := extractText(resp)
	if !ok {
		return domain.Reply{}, ErrEmptyResponse
	}
	return domain.TextReply(text), nil
}

func extractText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil {
		return "", false
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			continue
		}
		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		return sb.String(), true
	}
	return "", false
}

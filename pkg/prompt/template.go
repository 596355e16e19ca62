// Package prompt renders the role-tagged messages sent to the model by each stage.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/aretw0/vlogger/pkg/domain"
)

// MessageTemplate is one role-tagged message with text/template placeholders.
type MessageTemplate struct {
	Role domain.Role `json:"role" yaml:"role"`
	Text string      `json:"text" yaml:"text"`
}

// Template is the prompt of a single stage.
type Template struct {
	Messages []MessageTemplate `json:"messages" yaml:"messages"`
}

var funcs = template.FuncMap{
	"json": func(v any) (string, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	},
}

// Render binds vars into every message. A placeholder without a binding is an error.
func (t Template) Render(vars map[string]any) ([]domain.Message, error) {
	out := make([]domain.Message, 0, len(t.Messages))
	for i, m := range t.Messages {
		tmpl, err := template.New(fmt.Sprintf("%s-%d", m.Role, i)).
			Funcs(funcs).
			Option("missingkey=error").
			Parse(m.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s message: %w", m.Role, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, vars); err != nil {
			return nil, fmt.Errorf("failed to render %s message: %w", m.Role, err)
		}
		out = append(out, domain.Message{Role: m.Role, Content: buf.String()})
	}
	return out, nil
}

// System returns the text of the first system message.
func (t Template) System() string {
	return t.text(domain.RoleSystem)
}

// Human returns the text of the first human message.
func (t Template) Human() string {
	return t.text(domain.RoleHuman)
}

func (t Template) text(role domain.Role) string {
	for _, m := range t.Messages {
		if m.Role == role {
			return m.Text
		}
	}
	return ""
}

// New builds the usual system + human pair.
func New(system, human string) Template {
	return Template{Messages: []MessageTemplate{
		{Role: domain.RoleSystem, Text: system},
		{Role: domain.RoleHuman, Text: human},
	}}
}

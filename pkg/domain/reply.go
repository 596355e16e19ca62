package domain

import "fmt"

// Role tags a message sent to a model.
type Role string

const (
	RoleSystem    Role = "system"
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// Message is a rendered, role-tagged prompt message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ModelRequest is a single synchronous completion call.
// Stage is informational; adapters may use it for logging or scripting.
type ModelRequest struct {
	Stage    Stage
	Messages []Message
}

// ReplyKind discriminates the Reply variant.
type ReplyKind int

const (
	// ReplyText carries free-form text that may or may not contain JSON.
	ReplyText ReplyKind = iota
	// ReplyStructured carries an already decoded value.
	ReplyStructured
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyText:
		return "text"
	case ReplyStructured:
		return "structured"
	default:
		return fmt.Sprintf("ReplyKind(%d)", int(k))
	}
}

// Reply is what a model call produced: Structured(value) | Text(string).
type Reply struct {
	Kind  ReplyKind `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Value any       `json:"value,omitempty"`
}

// TextReply builds the text variant.
func TextReply(s string) Reply {
	return Reply{Kind: ReplyText, Text: s}
}

// StructuredReply builds the structured variant.
func StructuredReply(v any) Reply {
	return Reply{Kind: ReplyStructured, Value: v}
}

// StageReply is an entry of the raw reply log.
type StageReply struct {
	Stage Stage `json:"stage"`
	Reply Reply `json:"reply"`
}

// Package studio drives the curriculum authoring conversation: an
// educator chats about the course they want, and when enough detail
// has accumulated the model emits a complete cartridge draft.
package studio

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/nileshk/solance/internal/cartridge"
	"github.com/nileshk/solance/internal/llm"
)

const maxStudioTokens = 8192

// Turn is one message in the authoring chat.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Request is the full authoring conversation so far.
type Request struct {
	Messages []Turn `json:"messages"`

	// Model optionally overrides the configured LLM model.
	Model string `json:"model,omitempty"`
}

// ReplyType tags the union in Reply.
type ReplyType string

const (
	ReplyMessage   ReplyType = "message"
	ReplyCartridge ReplyType = "cartridge"
)

// Reply is either a follow-up question to the educator or a finished
// cartridge draft, never both.
type Reply struct {
	Type      ReplyType            `json:"type"`
	Message   string               `json:"message,omitempty"`
	Cartridge *cartridge.Cartridge `json:"cartridge,omitempty"`
}

// ValidationError reports a malformed authoring request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid studio request: %s: %s", e.Field, e.Reason)
}

const systemPrompt = `You are a curriculum designer helping an educator build a course
cartridge for an adaptive learning platform.

Each turn, reply with exactly one of:
- type "message": a clarifying question or design suggestion, when you
  still need information about the audience, scope, language or level
  progression.
- type "cartridge": the complete course draft, once the conversation
  contains enough detail.

Cartridge rules:
- curriculum levels are numbered contiguously starting at 1, easiest first.
- every level lists at least three concepts and a question_style describing
  how questions at that level should read.
- meta.subject is a short machine-friendly name; meta.display_name is what
  students see.
- Do not emit a cartridge until the educator has confirmed the rough shape.`

func replySchema() *llm.Schema {
	return &llm.Schema{
		Name:        "studio-reply",
		Description: "Either a follow-up message or a complete cartridge draft",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type": map[string]any{
					"type": "string",
					"enum": []any{"message", "cartridge"},
				},
				"message": map[string]any{
					"type":        "string",
					"description": "Follow-up question or suggestion. Present only when type is message.",
				},
				"cartridge": map[string]any{
					"type":        "object",
					"description": "Complete course draft. Present only when type is cartridge.",
					"properties": map[string]any{
						"meta": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"subject":      map[string]any{"type": "string"},
								"display_name": map[string]any{"type": "string"},
								"description":  map[string]any{"type": "string"},
								"language":     map[string]any{"type": "string"},
							},
							"required": []any{"subject", "display_name", "description"},
						},
						"curriculum": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"level":          map[string]any{"type": "integer"},
									"name":           map[string]any{"type": "string"},
									"description":    map[string]any{"type": "string"},
									"concepts":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
									"question_style": map[string]any{"type": "string"},
								},
								"required": []any{"level", "name", "concepts", "question_style"},
							},
						},
					},
					"required": []any{"meta", "curriculum"},
				},
			},
			"required": []any{"type"},
		},
	}
}

type Service struct {
	provider llm.Provider
	logger   *zap.Logger
}

func NewService(provider llm.Provider, logger *zap.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Chat advances the authoring conversation one turn. A cartridge reply
// is structurally validated before it reaches the caller; a draft that
// fails validation is treated as a malformed model response.
func (s *Service) Chat(ctx context.Context, req Request) (Reply, error) {
	if len(req.Messages) == 0 {
		return Reply{}, &ValidationError{Field: "messages", Reason: "must not be empty"}
	}

	msgs := make([]llm.Message, 0, len(req.Messages))
	for i, m := range req.Messages {
		var role llm.Role
		switch m.Role {
		case "user":
			role = llm.RoleUser
		case "assistant":
			role = llm.RoleAssistant
		default:
			return Reply{}, &ValidationError{
				Field:  fmt.Sprintf("messages[%d].role", i),
				Reason: "must be user or assistant",
			}
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "studio-chat"), llm.Request{
		System:      systemPrompt,
		Messages:    msgs,
		Schema:      replySchema(),
		Model:       req.Model,
		MaxTokens:   maxStudioTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return Reply{}, err
	}

	return decodeReply(resp.Content)
}

func decodeReply(raw json.RawMessage) (Reply, error) {
	var r Reply
	if err := json.Unmarshal(raw, &r); err != nil {
		return Reply{}, &llm.ErrInvalidResponse{Content: raw, Err: err}
	}

	switch r.Type {
	case ReplyMessage:
		if r.Message == "" {
			return Reply{}, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("message reply with empty message")}
		}
		if r.Cartridge != nil {
			return Reply{}, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("message reply carries a cartridge")}
		}
		return Reply{Type: ReplyMessage, Message: r.Message}, nil

	case ReplyCartridge:
		if r.Cartridge == nil {
			return Reply{}, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("cartridge reply missing cartridge")}
		}
		if r.Message != "" {
			return Reply{}, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("cartridge reply carries a message")}
		}
		if err := cartridge.Validate(*r.Cartridge); err != nil {
			return Reply{}, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("draft failed validation: %w", err)}
		}
		return Reply{Type: ReplyCartridge, Cartridge: r.Cartridge}, nil

	default:
		return Reply{}, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("unknown reply type %q", r.Type)}
	}
}

// Package grading scores a standalone answer to a question, outside
// any tutoring conversation.
package grading

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/nileshk/solance/internal/llm"
)

const maxGradeTokens = 1024

// Request is one answer submission.
type Request struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`

	// Model optionally overrides the configured LLM model.
	Model string `json:"model,omitempty"`
}

// Result is the scored outcome.
type Result struct {
	// Marks is the score, 0 to 10 inclusive.
	Marks int `json:"marks"`

	// Correction shows the right approach when marks are lost.
	Correction string `json:"correction"`

	// Remarks are misconception notes; empty for clean work.
	Remarks []string `json:"remarks"`
}

// ValidationError reports a malformed grading request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid grading request: %s: %s", e.Field, e.Reason)
}

const systemPrompt = `You are a strict but fair grader. Score the student's answer to
the question on a 0-10 scale.

Rules:
- 10 means fully correct with sound reasoning; 0 means no meaningful attempt.
- Award partial credit for correct method with arithmetic slips.
- correction must show the right solution whenever marks are lost; leave it
  empty for a perfect answer.
- remarks lists short misconception notes, one per distinct error; empty for
  clean work.`

func gradeSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "grading-result",
		Description: "Score, correction and misconception notes for one answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"marks": map[string]any{
					"type":        "integer",
					"description": "Score from 0 to 10",
				},
				"correction": map[string]any{
					"type":        "string",
					"description": "The correct solution, empty when the answer is fully right",
				},
				"remarks": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Short misconception notes",
				},
			},
			"required":             []any{"marks", "correction", "remarks"},
			"additionalProperties": false,
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

// Grade scores one answer. Marks are clamped to the 0..10 scale even
// when the model misbehaves.
func (s *Service) Grade(ctx context.Context, req Request) (Result, error) {
	if req.Question == "" {
		return Result{}, &ValidationError{Field: "question", Reason: "must not be empty"}
	}
	if req.Answer == "" {
		return Result{}, &ValidationError{Field: "answer", Reason: "must not be empty"}
	}

	prompt := fmt.Sprintf("Question: %s\n\nStudent's answer: %s\n\nGrade it.", req.Question, req.Answer)

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "grade-answer"), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      gradeSchema(),
		Model:       req.Model,
		MaxTokens:   maxGradeTokens,
		Temperature: 0.0,
	})
	if err != nil {
		return Result{}, err
	}

	var out Result
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Result{}, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	if out.Remarks == nil {
		out.Remarks = []string{}
	}
	if out.Marks < 0 {
		out.Marks = 0
	}
	if out.Marks > 10 {
		out.Marks = 10
	}
	return out, nil
}

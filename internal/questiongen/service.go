// Package questiongen produces adaptive practice questions: it reads a
// student's recent history, lets the difficulty policy pick a level and
// concept, and asks the LLM for a question pitched there.
package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/nileshk/solance/internal/adapt"
	"github.com/nileshk/solance/internal/cartridge"
	"github.com/nileshk/solance/internal/history"
	"github.com/nileshk/solance/internal/llm"
)

const maxQuestionTokens = 1024

// Result is one generated question.
type Result struct {
	Question string `json:"question"`
	Level    int    `json:"level"`

	// Concept is what the policy targeted. Informational; not part of
	// the model's output.
	Concept string `json:"concept,omitempty"`
}

type Service struct {
	provider llm.Provider
	subjects *cartridge.Store
	records  *history.Store
	window   int
	logger   *zap.Logger
}

func NewService(provider llm.Provider, subjects *cartridge.Store, records *history.Store, window int, logger *zap.Logger) *Service {
	if window <= 0 {
		window = 10
	}
	return &Service{
		provider: provider,
		subjects: subjects,
		records:  records,
		window:   window,
		logger:   logger,
	}
}

// Generate produces the next question for a (user, subject) pair.
// model optionally overrides the configured LLM model for this call.
func (s *Service) Generate(ctx context.Context, userID, subjectID, model string) (Result, error) {
	cart, err := s.subjects.Get(ctx, subjectID)
	if err != nil {
		return Result{}, err
	}

	window, err := s.records.Window(ctx, userID, subjectID, s.window)
	if err != nil {
		return Result{}, err
	}

	decision := adapt.NextLevel(window, &cart)
	s.logger.Debug("difficulty decision",
		zap.String("user_id", userID),
		zap.String("subject_id", subjectID),
		zap.Int("level", decision.Level),
		zap.String("concept", decision.Concept),
		zap.Bool("synthesized", decision.Synthesized))

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "generate-question"), llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(&cart, decision, window)},
		},
		Schema:      questionSchema(),
		Model:       model,
		MaxTokens:   maxQuestionTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return Result{}, err
	}

	var out Result
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Result{}, fmt.Errorf("decoding question: %w", err)
	}

	// The model echoes a level; the policy's decision is authoritative.
	out.Level = decision.Level
	out.Concept = decision.Concept
	return out, nil
}

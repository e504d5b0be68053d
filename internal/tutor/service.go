package tutor

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/nileshk/solance/internal/llm"
)

const maxReplyTokens = 2048

type Service struct {
	provider llm.Provider
	logger   *zap.Logger
}

func NewService(provider llm.Provider, logger *zap.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Step runs one tutoring round and returns the tutor's reply. The
// reply type is enforced against the protocol phase: an opening round
// must produce a step, a closing round (final answer or end signal)
// must produce a grade.
func (s *Service) Step(ctx context.Context, req Request) (Reply, error) {
	if err := validate(req); err != nil {
		return Reply{}, err
	}

	ph := classify(req)

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "tutor-step"), llm.Request{
		System:      systemPrompt,
		Messages:    buildMessages(req),
		Schema:      replySchema(),
		Model:       req.Model,
		MaxTokens:   maxReplyTokens,
		Temperature: 0.4,
	})
	if err != nil {
		return Reply{}, err
	}

	reply, wrongAttempts, err := decodeReply(resp.Content)
	if err != nil {
		return Reply{}, err
	}

	if !ph.allows(reply.Type) {
		return Reply{}, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("reply type %q not allowed in this phase", reply.Type),
		}
	}

	if reply.Type == ReplyGrade {
		raw := reply.Grade.Marks
		reply.Grade.Marks = capMarks(raw, wrongAttempts)
		s.logger.Debug("graded tutoring round",
			zap.Int("raw_marks", raw),
			zap.Int("wrong_attempts", wrongAttempts),
			zap.Int("marks", reply.Grade.Marks))
	}

	return reply, nil
}

// wireGrade carries the model's grade branch including the attempt
// count, which is consumed by capping and not echoed to clients.
type wireGrade struct {
	Marks         int      `json:"marks"`
	Correction    string   `json:"correction"`
	Remarks       []string `json:"remarks"`
	WrongAttempts int      `json:"wrong_attempts"`
}

type wireReply struct {
	Type  string     `json:"type"`
	Step  string     `json:"step"`
	Grade *wireGrade `json:"grade"`
}

// decodeReply parses the step-or-grade union strictly: exactly one
// branch must be populated, matching the type tag.
func decodeReply(raw json.RawMessage) (Reply, int, error) {
	var w wireReply
	if err := json.Unmarshal(raw, &w); err != nil {
		return Reply{}, 0, &llm.ErrInvalidResponse{Content: raw, Err: err}
	}

	switch w.Type {
	case string(ReplyStep):
		if w.Step == "" {
			return Reply{}, 0, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("step reply with empty step")}
		}
		if w.Grade != nil {
			return Reply{}, 0, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("step reply carries a grade branch")}
		}
		return Reply{Type: ReplyStep, Step: w.Step}, 0, nil

	case string(ReplyGrade):
		if w.Grade == nil {
			return Reply{}, 0, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("grade reply missing grade branch")}
		}
		if w.Step != "" {
			return Reply{}, 0, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("grade reply carries a step branch")}
		}
		remarks := w.Grade.Remarks
		if remarks == nil {
			remarks = []string{}
		}
		return Reply{
			Type: ReplyGrade,
			Grade: &Grade{
				Marks:      w.Grade.Marks,
				Correction: w.Grade.Correction,
				Remarks:    remarks,
			},
		}, w.Grade.WrongAttempts, nil

	default:
		return Reply{}, 0, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("unknown reply type %q", w.Type)}
	}
}

// capMarks bounds the score by the attempt penalty: each wrong attempt
// costs two marks off the ceiling, so more mistakes can never yield a
// higher final score.
func capMarks(marks, wrongAttempts int) int {
	if wrongAttempts < 0 {
		wrongAttempts = 0
	}
	ceiling := 10 - 2*wrongAttempts
	if ceiling < 0 {
		ceiling = 0
	}
	if marks > ceiling {
		marks = ceiling
	}
	if marks < 0 {
		marks = 0
	}
	if marks > 10 {
		marks = 10
	}
	return marks
}

// Package tutor runs the step-by-step guidance protocol: the model
// either offers the next hint toward solving a question or grades the
// student's work, never both in one turn.
package tutor

import "fmt"

// Turn roles in the tutoring transcript.
const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
)

// Turn is one exchange in the tutoring transcript, oldest first.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one tutoring round.
type Request struct {
	Question string `json:"question"`

	// Transcript is the conversation so far. Empty on the opening turn.
	Transcript []Turn `json:"transcript,omitempty"`

	// FinalAnswer, when set, is the student's direct answer to the
	// question. It forces a grading reply.
	FinalAnswer string `json:"final_answer,omitempty"`

	// EndSignal is the student giving up or asking to stop. It also
	// forces a grading reply, scored on progress so far.
	EndSignal bool `json:"end_signal,omitempty"`

	// Model optionally overrides the configured LLM model.
	Model string `json:"model,omitempty"`
}

// ReplyType tags the union in Reply.
type ReplyType string

const (
	ReplyStep  ReplyType = "step"
	ReplyGrade ReplyType = "grade"
)

// Grade is the scored outcome of a tutoring round or a standalone
// answer submission.
type Grade struct {
	// Marks is the final score, 0 to 10 inclusive.
	Marks int `json:"marks"`

	// Correction is the worked solution or fix for the student's error.
	Correction string `json:"correction"`

	// Remarks are misconception notes fed into future question prompts.
	Remarks []string `json:"remarks"`
}

// Reply is the tutor's output: exactly one of Step or Grade.
type Reply struct {
	Type  ReplyType `json:"type"`
	Step  string    `json:"step,omitempty"`
	Grade *Grade    `json:"grade,omitempty"`
}

// ValidationError reports a malformed tutoring request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid tutoring request: %s: %s", e.Field, e.Reason)
}

func validate(req Request) error {
	if req.Question == "" {
		return &ValidationError{Field: "question", Reason: "must not be empty"}
	}
	for i, turn := range req.Transcript {
		if turn.Role != RoleStudent && turn.Role != RoleTutor {
			return &ValidationError{
				Field:  fmt.Sprintf("transcript[%d].role", i),
				Reason: fmt.Sprintf("must be %q or %q", RoleStudent, RoleTutor),
			}
		}
	}
	return nil
}

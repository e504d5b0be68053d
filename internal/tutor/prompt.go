package tutor

import (
	"fmt"
	"strings"

	"github.com/nileshk/solance/internal/llm"
)

const systemPrompt = `You are a patient tutor guiding a student through one question.
Each turn you reply with exactly one of:
- type "step": the next small hint or sub-question that moves the student
  forward. Never reveal the full answer in a step.
- type "grade": a final assessment with marks (0-10), a correction showing
  the right approach, remarks listing any misconceptions, and wrong_attempts
  counting the student's incorrect tries in the conversation.

Rules:
- If the conversation is just starting, open with a step.
- If the student gives their final answer or asks to stop, grade.
- Grade generously on understanding, not presentation. A correct direct
  answer scores full marks even with no intermediate steps shown; a wrong
  direct answer with no attempt scores low, but the correction must still
  teach the full solution.
- wrong_attempts must count every clearly incorrect attempt in the
  transcript, including a wrong final answer.
- Keep steps short; one idea per step.`

func buildMessages(req Request) []llm.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", req.Question)

	if len(req.Transcript) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, turn := range req.Transcript {
			fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
		}
	}

	switch {
	case req.FinalAnswer != "":
		fmt.Fprintf(&b, "\nThe student submits their final answer: %s\nGrade it now.\n", req.FinalAnswer)
	case req.EndSignal:
		b.WriteString("\nThe student wants to stop. Grade their progress so far; an unattempted question scores low but the correction must still teach the solution.\n")
	case len(req.Transcript) == 0:
		b.WriteString("\nOpen the tutoring session with the first step.\n")
	default:
		b.WriteString("\nContinue: either give the next step, or grade if the student has effectively solved it.\n")
	}

	return []llm.Message{{Role: llm.RoleUser, Content: b.String()}}
}

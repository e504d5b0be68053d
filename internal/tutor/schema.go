package tutor

import "github.com/nileshk/solance/internal/llm"

// replySchema is the step-or-grade union. Structured output backends
// do not all support oneOf, so the union is expressed as a required
// type tag with optional branches; decode enforces exclusivity.
func replySchema() *llm.Schema {
	return &llm.Schema{
		Name:        "tutor-reply",
		Description: "Either the next guidance step or a final grade, never both",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type": map[string]any{
					"type": "string",
					"enum": []any{"step", "grade"},
				},
				"step": map[string]any{
					"type":        "string",
					"description": "The next hint or sub-question. Present only when type is step.",
				},
				"grade": map[string]any{
					"type":        "object",
					"description": "Final assessment. Present only when type is grade.",
					"properties": map[string]any{
						"marks": map[string]any{
							"type":        "integer",
							"description": "Raw score before attempt penalties, 0 to 10",
						},
						"correction": map[string]any{
							"type":        "string",
							"description": "The worked solution or correction",
						},
						"remarks": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Short misconception notes, empty when the work was clean",
						},
						"wrong_attempts": map[string]any{
							"type":        "integer",
							"description": "How many incorrect attempts the transcript shows",
						},
					},
					"required": []any{"marks", "correction", "remarks", "wrong_attempts"},
				},
			},
			"required": []any{"type"},
		},
	}
}

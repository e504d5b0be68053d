package questiongen

import "github.com/nileshk/solance/internal/llm"

// questionSchema constrains generation output to exactly the fields
// the client consumes.
func questionSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "adaptive-question",
		Description: "A single practice question with its difficulty level",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The question text, self-contained and solvable without extra context",
				},
				"level": map[string]any{
					"type":        "integer",
					"description": "The difficulty level this question was generated at",
				},
			},
			"required":             []any{"question", "level"},
			"additionalProperties": false,
		},
	}
}

package questiongen

import (
	"fmt"
	"strings"

	"github.com/nileshk/solance/internal/adapt"
	"github.com/nileshk/solance/internal/cartridge"
	"github.com/nileshk/solance/internal/history"
)

const systemPrompt = `You are a question author for an adaptive learning platform.
You write one practice question at a time, pitched exactly at the requested
difficulty level and concept. Questions must be self-contained: a student
must be able to answer from the question text alone.

Rules:
- Target the given concept; do not drift into neighboring topics.
- Match the requested question style.
- Never repeat a question from the student's recent history.
- If the history shows recurring mistakes, craft the question to probe
  that weakness without mentioning the past mistakes.
- Respond with the question text and the level you wrote it at.`

// buildPrompt assembles the single user turn for question generation.
func buildPrompt(c *cartridge.Cartridge, d adapt.Decision, window []history.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s (%s)\n", c.Meta.DisplayName, c.Meta.Subject)
	if c.Meta.Description != "" {
		fmt.Fprintf(&b, "Course description: %s\n", c.Meta.Description)
	}
	if c.Meta.Language != "" {
		fmt.Fprintf(&b, "Write the question in: %s\n", c.Meta.Language)
	}

	entry := c.LevelAt(d.Level)
	fmt.Fprintf(&b, "\nGenerate one question at level %d", d.Level)
	if d.Synthesized {
		fmt.Fprintf(&b, " (beyond the top of the curriculum; push difficulty past %q material)", entry.Name)
	} else {
		fmt.Fprintf(&b, " (%s)", entry.Name)
	}
	fmt.Fprintf(&b, "\nTarget concept: %s\n", d.Concept)
	if d.QuestionStyle != "" {
		fmt.Fprintf(&b, "Question style: %s\n", d.QuestionStyle)
	}

	if len(window) > 0 {
		b.WriteString("\nRecent history, oldest first:\n")
		for _, r := range window {
			fmt.Fprintf(&b, "- [level %d, score %d/10] %s\n", r.Level, r.Score, r.Question)
			for _, remark := range r.Remarks {
				fmt.Fprintf(&b, "  weakness: %s\n", remark)
			}
		}
	}

	return b.String()
}

// Package adapt derives the next question's difficulty level and
// target concept from a student's recent interaction window. The
// policy is pure: same window and curriculum in, same decision out.
package adapt

import (
	"github.com/nileshk/solance/internal/cartridge"
	"github.com/nileshk/solance/internal/history"
)

// Promotion and demotion both require two consecutive signals so a
// single lucky or unlucky attempt never moves the level.
const (
	promoteScore = 8
	demoteScore  = 5
	streak       = 2
)

// Decision is the policy's output for one question.
type Decision struct {
	// Level is the difficulty to generate at. It may exceed the
	// curriculum's top level number for students who keep being
	// promoted; content then stays at the top level's concepts.
	Level int

	// Concept is the curriculum concept the question should target.
	Concept string

	// QuestionStyle is the authoring hint from the effective
	// curriculum level.
	QuestionStyle string

	// Synthesized is true when Level lies beyond the curriculum, so
	// Concept and QuestionStyle came from the top level instead.
	Synthesized bool
}

// NextLevel picks the difficulty and concept for the next question.
// The window must be in chronological order, oldest first.
func NextLevel(window []history.Record, c *cartridge.Cartridge) Decision {
	level := anchorLevel(window, c)

	if promoted(window) {
		level++
	} else if demoted(window) && level > c.BaseLevel() {
		level--
	}

	entry := c.LevelAt(level)
	synthesized := level > c.MaxLevel()

	return Decision{
		Level:         level,
		Concept:       pickConcept(window, entry, level),
		QuestionStyle: entry.QuestionStyle,
		Synthesized:   synthesized,
	}
}

// anchorLevel is the newest record's level, or the curriculum base for
// a fresh student.
func anchorLevel(window []history.Record, c *cartridge.Cartridge) int {
	if len(window) == 0 {
		return c.BaseLevel()
	}
	return window[len(window)-1].Level
}

func promoted(window []history.Record) bool {
	if len(window) < streak {
		return false
	}
	for _, r := range window[len(window)-streak:] {
		if r.Score < promoteScore {
			return false
		}
	}
	return true
}

func demoted(window []history.Record) bool {
	if len(window) < streak {
		return false
	}
	for _, r := range window[len(window)-streak:] {
		if r.Score > demoteScore {
			return false
		}
	}
	return true
}

// pickConcept rotates through the level's concepts. The slot is the
// count of window records already asked at the target level; when that
// lands on the concept of the newest record at that level, it advances
// one more so the student never sees the same concept twice in a row
// at one level. Avoidance is scoped to the level: records at other
// levels in between do not reset it.
func pickConcept(window []history.Record, entry cartridge.Level, level int) string {
	if len(entry.Concepts) == 0 {
		return ""
	}

	asked := 0
	for _, r := range window {
		if r.Level == level {
			asked++
		}
	}
	idx := asked % len(entry.Concepts)

	for i := len(window) - 1; i >= 0; i-- {
		if window[i].Level != level {
			continue
		}
		if entry.Concepts[idx] == window[i].Concept {
			idx = (idx + 1) % len(entry.Concepts)
		}
		break
	}
	return entry.Concepts[idx]
}

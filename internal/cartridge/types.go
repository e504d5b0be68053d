// Package cartridge holds the curriculum catalog: per-subject leveled
// concept lists that drive question generation.
package cartridge

// Meta describes a subject cartridge.
type Meta struct {
	SubjectID   string `json:"subject_id,omitempty"`
	Subject     string `json:"subject"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Language    string `json:"language,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
	Public      bool   `json:"public"`
}

// Level is one rung of a subject's curriculum.
type Level struct {
	// Level is the curriculum's own level number. Levels are contiguous
	// and ascending; the first entry defines the base level.
	Level int `json:"level"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// Concepts are the teachable units at this level. Never empty in a
	// valid cartridge.
	Concepts []string `json:"concepts"`

	// QuestionStyle instructs the generator how to phrase questions at
	// this level. It is an authoring-side hint, never shown to students.
	QuestionStyle string `json:"question_style"`
}

// Cartridge is the full course structure for one subject.
type Cartridge struct {
	Meta       Meta    `json:"meta"`
	Curriculum []Level `json:"curriculum"`
}

// BaseLevel returns the number of the first curriculum level.
func (c *Cartridge) BaseLevel() int {
	if len(c.Curriculum) == 0 {
		return 0
	}
	return c.Curriculum[0].Level
}

// MaxLevel returns the number of the last curriculum level.
func (c *Cartridge) MaxLevel() int {
	if len(c.Curriculum) == 0 {
		return 0
	}
	return c.Curriculum[len(c.Curriculum)-1].Level
}

// LevelAt returns the curriculum entry with the given level number.
// Lookups past the end clamp to the last level; lookups before the
// base clamp to the first.
func (c *Cartridge) LevelAt(level int) Level {
	if len(c.Curriculum) == 0 {
		return Level{}
	}
	idx := level - c.BaseLevel()
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.Curriculum) {
		idx = len(c.Curriculum) - 1
	}
	return c.Curriculum[idx]
}

// Summary is the flattened list view served by GET /subjects.
type Summary struct {
	SubjectID   string   `json:"subject_id"`
	DisplayName string   `json:"display_name"`
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Concepts    []string `json:"curriculum_concepts"`
}

// Summarize flattens a cartridge into its list representation.
func Summarize(c Cartridge) Summary {
	var concepts []string
	for _, lvl := range c.Curriculum {
		concepts = append(concepts, lvl.Concepts...)
	}
	return Summary{
		SubjectID:   c.Meta.SubjectID,
		DisplayName: c.Meta.DisplayName,
		Subject:     c.Meta.Subject,
		Description: c.Meta.Description,
		Concepts:    concepts,
	}
}

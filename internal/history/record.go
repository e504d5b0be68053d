// Package history persists per-user interaction records and serves the
// recent window the difficulty policy reads.
package history

import (
	"time"

	"github.com/google/uuid"
)

// Record is one graded question attempt for a (user, subject) pair.
type Record struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	SubjectID string    `json:"subject_id"`
	Question  string    `json:"question"`

	// Score is the final mark on the 0..10 scale.
	Score int `json:"score"`

	// Remarks carries the grader's misconception notes, fed back into
	// later question prompts.
	Remarks []string `json:"remarks"`

	// Level and Concept record what the question targeted, so the
	// policy can anchor on them without re-deriving.
	Level   int    `json:"level"`
	Concept string `json:"concept"`

	CreatedAt time.Time `json:"created_at"`
}

// NewRecord fills in the identity and timestamp fields.
func NewRecord(userID, subjectID, question string, score int, remarks []string, level int, concept string) Record {
	if remarks == nil {
		remarks = []string{}
	}
	return Record{
		ID:        uuid.New(),
		UserID:    userID,
		SubjectID: subjectID,
		Question:  question,
		Score:     score,
		Remarks:   remarks,
		Level:     level,
		Concept:   concept,
		CreatedAt: time.Now().UTC(),
	}
}

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store reads and writes interaction records.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append persists one record.
func (s *Store) Append(ctx context.Context, r Record) error {
	remarks, err := json.Marshal(r.Remarks)
	if err != nil {
		return fmt.Errorf("encoding remarks: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO interactions
		   (id, user_id, subject_id, question, score, remarks_json, level, concept, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID.String(), r.UserID, r.SubjectID, r.Question, r.Score,
		string(remarks), r.Level, r.Concept, r.CreatedAt.UnixMicro())
	if err != nil {
		return fmt.Errorf("inserting interaction: %w", err)
	}
	return nil
}

// Window returns up to limit most recent records for the pair, ordered
// oldest to newest. Callers that want "the newest" read the last slice
// element. The id tiebreaker keeps the order deterministic when two
// records share a timestamp.
func (s *Store) Window(ctx context.Context, userID, subjectID string, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, subject_id, question, score, remarks_json, level, concept, created_at
		 FROM interactions
		 WHERE user_id = $1 AND subject_id = $2
		 ORDER BY created_at DESC, id DESC
		 LIMIT $3`, userID, subjectID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r       Record
			id      string
			remarks string
			created int64
		)
		if err := rows.Scan(&id, &r.UserID, &r.SubjectID, &r.Question, &r.Score,
			&remarks, &r.Level, &r.Concept, &created); err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		r.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing interaction id %q: %w", id, err)
		}
		if err := json.Unmarshal([]byte(remarks), &r.Remarks); err != nil {
			return nil, fmt.Errorf("decoding remarks: %w", err)
		}
		r.CreatedAt = time.UnixMicro(created).UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows arrived newest-first; flip to chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

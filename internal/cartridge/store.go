package cartridge

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// insertRetries bounds how many times Insert re-rolls a subject ID on
// a primary-key collision before giving up.
const insertRetries = 5

// Store persists cartridges in the subjects table. The full cartridge
// travels as a JSON payload column; subject_id, created_by and public
// are lifted out for querying.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get loads one cartridge by subject ID. Returns ErrNotFound when the
// subject does not exist.
func (s *Store) Get(ctx context.Context, subjectID string) (Cartridge, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM subjects WHERE subject_id = $1`, subjectID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Cartridge{}, ErrNotFound
	}
	if err != nil {
		return Cartridge{}, fmt.Errorf("loading subject %s: %w", subjectID, err)
	}

	var c Cartridge
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return Cartridge{}, fmt.Errorf("decoding subject %s: %w", subjectID, err)
	}
	c.Meta.SubjectID = subjectID
	return c, nil
}

// ListForUser returns summaries of all cartridges visible to a user:
// public ones plus the user's own, newest first.
func (s *Store) ListForUser(ctx context.Context, userID string) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject_id, payload FROM subjects
		 WHERE public = $1 OR created_by = $2
		 ORDER BY created_at DESC`, true, userID)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scanning subject row: %w", err)
		}
		var c Cartridge
		if err := json.Unmarshal([]byte(payload), &c); err != nil {
			return nil, fmt.Errorf("decoding subject %s: %w", id, err)
		}
		c.Meta.SubjectID = id
		out = append(out, Summarize(c))
	}
	return out, rows.Err()
}

// Insert validates and persists a new cartridge, minting a fresh
// subject ID. On an ID collision it re-rolls up to insertRetries times.
func (s *Store) Insert(ctx context.Context, c Cartridge) (string, error) {
	if err := Validate(c); err != nil {
		return "", err
	}

	for attempt := 0; attempt < insertRetries; attempt++ {
		id, err := NewSubjectID()
		if err != nil {
			return "", err
		}

		c.Meta.SubjectID = id
		payload, err := json.Marshal(c)
		if err != nil {
			return "", fmt.Errorf("encoding cartridge: %w", err)
		}

		_, err = s.db.ExecContext(ctx,
			`INSERT INTO subjects (subject_id, payload, created_by, public, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, string(payload), c.Meta.CreatedBy, c.Meta.Public, time.Now().Unix())
		if err == nil {
			return id, nil
		}
		if !isUniqueViolation(err) {
			return "", fmt.Errorf("inserting subject: %w", err)
		}
	}
	return "", fmt.Errorf("inserting subject: exhausted %d id attempts", insertRetries)
}

// isUniqueViolation matches primary-key conflicts across both drivers
// by error text. pgx reports SQLSTATE 23505; sqlite reports a UNIQUE
// constraint failure.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "UNIQUE constraint")
}

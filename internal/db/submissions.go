package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/webjhones/requirements-intake/internal/intake"
)

const submissionColumns = `id, service_id, service_name, profile, answers, created_at`

// SaveSubmission stores a completed intake and returns the stored record.
func (db *DB) SaveSubmission(ctx context.Context, c intake.Completion) (*Submission, error) {
	profileJSON, err := json.Marshal(c.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	answers := c.Answers
	if answers == nil {
		answers = intake.Answers{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}

	s := &Submission{
		ServiceID:   c.ServiceID,
		ServiceName: c.ServiceName,
		Profile:     c.Profile,
		Answers:     answers,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO submissions (service_id, service_name, client_name, client_email, profile, answers)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		c.ServiceID, c.ServiceName, c.Profile.Name, c.Profile.Email, profileJSON, answersJSON,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}
	return s, nil
}

// GetSubmission retrieves a submission by ID. It returns nil, nil when the
// submission does not exist.
func (db *DB) GetSubmission(ctx context.Context, id uuid.UUID) (*Submission, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = $1`,
		id,
	)
	s, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return s, nil
}

// ListSubmissions retrieves submissions newest first.
func (db *DB) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]Submission, error) {
	limit := normalizeLimit(filter.Limit)

	var (
		rows pgx.Rows
		err  error
	)
	if filter.ServiceID != "" {
		rows, err = db.pool.Query(ctx,
			`SELECT `+submissionColumns+` FROM submissions
			 WHERE service_id = $1 ORDER BY created_at DESC LIMIT $2`,
			filter.ServiceID, limit,
		)
	} else {
		rows, err = db.pool.Query(ctx,
			`SELECT `+submissionColumns+` FROM submissions
			 ORDER BY created_at DESC LIMIT $1`,
			limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	submissions := []Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}
	return submissions, nil
}

// DeleteSubmission removes a submission.
func (db *DB) DeleteSubmission(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	return nil
}

func scanSubmission(row pgx.Row) (*Submission, error) {
	var s Submission
	var profileJSON, answersJSON []byte
	if err := row.Scan(&s.ID, &s.ServiceID, &s.ServiceName, &profileJSON, &answersJSON, &s.CreatedAt); err != nil {
		return nil, err
	}
	if err := decodeSubmission(&s, profileJSON, answersJSON); err != nil {
		return nil, err
	}
	return &s, nil
}

// decodeSubmission fills the JSONB columns of s.
func decodeSubmission(s *Submission, profileJSON, answersJSON []byte) error {
	if err := json.Unmarshal(profileJSON, &s.Profile); err != nil {
		return fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	s.Answers = intake.Answers{}
	if len(answersJSON) > 0 {
		if err := json.Unmarshal(answersJSON, &s.Answers); err != nil {
			return fmt.Errorf("failed to unmarshal answers: %w", err)
		}
	}
	return nil
}

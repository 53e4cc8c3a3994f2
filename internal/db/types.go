package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/webjhones/requirements-intake/internal/intake"
)

// Listing limits for ListSubmissions.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Submission is a persisted intake record
type Submission struct {
	ID          uuid.UUID            `json:"id"`
	ServiceID   string               `json:"service_id"`
	ServiceName string               `json:"service_name"`
	Profile     intake.ProfileRecord `json:"profile"`
	Answers     intake.Answers       `json:"answers"`
	CreatedAt   time.Time            `json:"created_at"`
}

// SubmissionFilter narrows ListSubmissions. Zero values mean no filter and
// the default limit.
type SubmissionFilter struct {
	ServiceID string
	Limit     int
}

// Admin is an account allowed to read submissions
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// normalizeLimit clamps a requested page size to (0, MaxListLimit].
func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

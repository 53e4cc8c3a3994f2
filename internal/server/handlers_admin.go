package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/webjhones/requirements-intake/internal/db"
	"github.com/webjhones/requirements-intake/internal/intake"
	"github.com/webjhones/requirements-intake/internal/summary"
)

// SubmissionDetail is a stored submission with its re-derived summary.
type SubmissionDetail struct {
	Submission *db.Submission `json:"submission"`
	Summary    summary.Record `json:"summary"`
}

// handleAdminLogin exchanges admin credentials for a bearer token.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if s.authHandler == nil {
		s.failure(w, r, &ErrNotConfigured{Feature: "persistence"})
		return
	}
	s.authHandler.Login(w, r)
}

// handleListSubmissions lists stored submissions, newest first. Query
// parameters: service (exact service id) and limit.
func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	filter := db.SubmissionFilter{ServiceID: r.URL.Query().Get("service")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			s.failure(w, r, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		filter.Limit = limit
	}

	submissions, err := s.db.ListSubmissions(r.Context(), filter)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if submissions == nil {
		submissions = []db.Submission{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"submissions": submissions,
		"count":       len(submissions),
	})
}

// handleGetSubmission returns one submission and its summary, recomputed
// from the stored profile and answers.
func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.failure(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	sub, err := s.db.GetSubmission(r.Context(), id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if sub == nil {
		s.failure(w, r, &ErrSubmissionNotFound{SubmissionID: id})
		return
	}

	rec := summary.FromCompletion(s.catalog, intake.Completion{
		Profile:     sub.Profile,
		ServiceID:   sub.ServiceID,
		ServiceName: sub.ServiceName,
		Answers:     sub.Answers,
	}, sub.CreatedAt)
	s.jsonResponse(w, http.StatusOK, SubmissionDetail{Submission: sub, Summary: rec})
}

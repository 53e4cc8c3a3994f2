package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/webjhones/requirements-intake/internal/intake"
	"github.com/webjhones/requirements-intake/internal/summary"
	"github.com/webjhones/requirements-intake/internal/types"
)

// persistenceNotice is reported when a completed intake could not be stored.
const persistenceNotice = "your answers could not be saved; the summary is still available"

// handleListServices returns the service catalog.
func (s *Server) handleListServices(w http.ResponseWriter, _ *http.Request) {
	services := s.catalog.Services()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"services": services,
		"count":    len(services),
	})
}

// handleServiceQuestions returns the questionnaire of one service.
func (s *Server) handleServiceQuestions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	service, ok := s.catalog.Service(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "service not found: "+id)
		return
	}
	questions := s.catalog.QuestionsFor(id)
	if len(questions) == 0 {
		s.unavailableResponse(w, id, nil)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"service":   service,
		"questions": questions,
	})
}

// handleCreateSession starts a wizard at the profile stage.
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	e := s.sessions.create()
	e.mu.Lock()
	defer e.mu.Unlock()

	log.Debug().Str("session_id", e.id.String()).Msg("session created")
	s.jsonResponse(w, http.StatusCreated, s.sessionResponse(e))
}

// handleGetSession returns the current state of a wizard.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *sessionEntry) {
		s.jsonResponse(w, http.StatusOK, s.sessionResponse(e))
	})
}

// handleDeleteSession discards a wizard.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.sessions.remove(id) {
		s.failure(w, r, &ErrSessionNotFound{SessionID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSubmitProfile validates the profile form and moves on to service selection.
func (s *Server) handleSubmitProfile(w http.ResponseWriter, r *http.Request) {
	var in intake.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.withSession(w, r, func(e *sessionEntry) {
		if _, err := e.wizard.SubmitProfile(in); err != nil {
			s.failure(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, s.sessionResponse(e))
	})
}

// handleSelectService opens the questionnaire of the chosen service. A
// service without questionnaire answers 404 with the unavailable outcome.
func (s *Server) handleSelectService(w http.ResponseWriter, r *http.Request) {
	var req types.SelectServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	s.withSession(w, r, func(e *sessionEntry) {
		err := e.wizard.SelectService(req.ServiceID)
		switch {
		case errors.Is(err, intake.ErrQuestionnaireUnavailable):
			s.unavailableResponse(w, req.ServiceID, s.sessionResponse(e))
		case err != nil:
			s.failure(w, r, err)
		default:
			s.jsonResponse(w, http.StatusOK, s.sessionResponse(e))
		}
	})
}

// handleBackToServices leaves the unavailable fallback.
func (s *Server) handleBackToServices(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *sessionEntry) {
		if err := e.wizard.BackToServices(); err != nil {
			s.failure(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, s.sessionResponse(e))
	})
}

// handleAnswer replaces the answer of one question.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req types.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.withSession(w, r, func(e *sessionEntry) {
		if err := e.wizard.Answer(r.PathValue("question_id"), req.Value); err != nil {
			s.failure(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, s.sessionResponse(e))
	})
}

// handleToggle adds or removes one option of a multi-choice answer.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req types.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	s.withSession(w, r, func(e *sessionEntry) {
		if err := e.wizard.Toggle(r.PathValue("question_id"), req.Option, req.Included); err != nil {
			s.failure(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, s.sessionResponse(e))
	})
}

// handleAdvance moves forward. Completing the questionnaire composes the
// summary and stores the submission.
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *sessionEntry) {
		t, err := e.wizard.Advance()
		if err != nil {
			s.failure(w, r, err)
			return
		}
		if t == intake.TransitionCompleted {
			s.complete(r.Context(), e)
		}
		s.jsonResponse(w, http.StatusOK, types.TransitionResponse{Transition: t, Session: s.sessionResponse(e)})
	})
}

// handleRetreat moves back. On the first question the wizard returns to
// service selection.
func (s *Server) handleRetreat(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *sessionEntry) {
		t, err := e.wizard.Retreat()
		if err != nil {
			s.failure(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, types.TransitionResponse{Transition: t, Session: s.sessionResponse(e)})
	})
}

// handleJump moves directly to a question index.
func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	var req types.JumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	s.withSession(w, r, func(e *sessionEntry) {
		if err := e.wizard.JumpTo(*req.Index); err != nil {
			s.failure(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, s.sessionResponse(e))
	})
}

// handleRestart discards the wizard's progress and returns to the profile form.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *sessionEntry) {
		e.wizard.Restart()
		e.reset()
		s.jsonResponse(w, http.StatusOK, s.sessionResponse(e))
	})
}

// complete composes the summary of a finished wizard and stores the
// submission. A storage failure is logged and surfaced as a notice; the
// wizard state is never rolled back.
func (s *Server) complete(ctx context.Context, e *sessionEntry) {
	c, ok := e.wizard.Completion()
	if !ok {
		return
	}
	rec := summary.FromCompletion(s.catalog, c, s.now())
	e.record = &rec

	if s.db == nil {
		log.Debug().Str("session_id", e.id.String()).Msg("persistence disabled, submission not stored")
		return
	}
	sub, err := s.db.SaveSubmission(ctx, c)
	if err != nil {
		log.Warn().Err(err).
			Str("session_id", e.id.String()).
			Str("service_id", c.ServiceID).
			Msg("failed to store submission")
		e.notice = persistenceNotice
		return
	}
	e.submissionID = &sub.ID
	log.Info().
		Str("session_id", e.id.String()).
		Str("submission_id", sub.ID.String()).
		Str("service_id", c.ServiceID).
		Int("complexity", rec.ComplexityScore).
		Msg("submission stored")
}

// withSession resolves the {id} path value and runs fn holding the session lock.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(e *sessionEntry)) {
	e, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e)
}

// sessionResponse snapshots a session. The caller holds e.mu.
func (s *Server) sessionResponse(e *sessionEntry) *types.SessionResponse {
	resp := &types.SessionResponse{
		ID:               e.id,
		Stage:            e.wizard.Stage(),
		RequestedService: e.wizard.RequestedService(),
		SubmissionID:     e.submissionID,
		Notice:           e.notice,
		CreatedAt:        e.createdAt,
	}
	if profile, ok := e.wizard.Profile(); ok {
		resp.Profile = &profile
	}
	if session := e.wizard.Session(); session != nil {
		resp.Questionnaire = types.NewQuestionnaireState(session)
	}
	return resp
}

// unavailableResponse answers a service without questionnaire.
func (s *Server) unavailableResponse(w http.ResponseWriter, serviceID string, session *types.SessionResponse) {
	body := map[string]any{
		"error":      intake.ErrQuestionnaireUnavailable.Error(),
		"outcome":    "unavailable",
		"service_id": serviceID,
	}
	if session != nil {
		body["session"] = session
	}
	s.jsonResponse(w, http.StatusNotFound, body)
}

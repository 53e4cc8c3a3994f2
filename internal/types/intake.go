package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/webjhones/requirements-intake/internal/catalog"
	"github.com/webjhones/requirements-intake/internal/intake"
	"github.com/webjhones/requirements-intake/internal/summary"
)

// SelectServiceRequest picks the service whose questionnaire to run.
type SelectServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
}

// AnswerRequest replaces the answer of one question. Value is a JSON string
// for text kinds or an array of strings for multi-choice kinds.
type AnswerRequest struct {
	Value intake.AnswerValue `json:"value"`
}

// ToggleRequest adds or removes one option of a multi-choice answer.
type ToggleRequest struct {
	Option   string `json:"option" validate:"required"`
	Included bool   `json:"included"`
}

// JumpRequest moves the questionnaire to a question index.
type JumpRequest struct {
	Index *int `json:"index" validate:"required,min=0"`
}

// Validate validates the SelectServiceRequest using the validator.
func (r *SelectServiceRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ToggleRequest using the validator.
func (r *ToggleRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the JumpRequest using the validator.
func (r *JumpRequest) Validate() error {
	return validate.Struct(r)
}

// QuestionnaireState is the navigator view of an open questionnaire.
type QuestionnaireState struct {
	Service       catalog.ServiceDefinition   `json:"service"`
	Index         int                         `json:"index"`
	Total         int                         `json:"total"`
	Progress      int                         `json:"progress"`
	Current       *catalog.QuestionDefinition `json:"current,omitempty"`
	CurrentAnswer *intake.AnswerValue         `json:"current_answer,omitempty"`
	CanAdvance    bool                        `json:"can_advance"`
	Statuses      []intake.QuestionStatus     `json:"statuses"`
	Answers       intake.Answers              `json:"answers"`
}

// NewQuestionnaireState snapshots a session for display. Progress is the
// percentage of the sequence reached, 100 once completed.
func NewQuestionnaireState(s *intake.Session) *QuestionnaireState {
	nav := s.Navigator
	state := &QuestionnaireState{
		Service:    s.Service,
		Index:      nav.Index(),
		Total:      nav.Len(),
		Progress:   100,
		CanAdvance: nav.CanAdvance(),
		Statuses:   nav.Statuses(),
		Answers:    s.Answers.Snapshot(),
	}
	if !nav.Done() {
		current := nav.Current()
		state.Current = &current
		state.Progress = (nav.Index() + 1) * 100 / nav.Len()
		if v, ok := s.Answers.Get(current.ID); ok {
			state.CurrentAnswer = &v
		}
	}
	return state
}

// SessionResponse is the state of one wizard session.
type SessionResponse struct {
	ID               uuid.UUID             `json:"id"`
	Stage            intake.Stage          `json:"stage"`
	Profile          *intake.ProfileRecord `json:"profile,omitempty"`
	RequestedService string                `json:"requested_service,omitempty"`
	Questionnaire    *QuestionnaireState   `json:"questionnaire,omitempty"`
	SubmissionID     *uuid.UUID            `json:"submission_id,omitempty"`
	Notice           string                `json:"notice,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

// TransitionResponse reports the outcome of a navigation intent.
type TransitionResponse struct {
	Transition intake.Transition `json:"transition"`
	Session    *SessionResponse  `json:"session"`
}

// SummaryResponse carries the composed summary of a completed session.
type SummaryResponse struct {
	Summary      summary.Record `json:"summary"`
	SubmissionID *uuid.UUID     `json:"submission_id,omitempty"`
	Notice       string         `json:"notice,omitempty"`
}

// LinkResponse carries one export link.
type LinkResponse struct {
	URL string `json:"url"`
}

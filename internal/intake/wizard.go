package intake

import (
	"errors"

	"github.com/webjhones/requirements-intake/internal/catalog"
)

// Stage is the wizard screen the user is on.
type Stage string

// Wizard stages.
const (
	StageProfile       Stage = "profile"
	StageService       Stage = "service"
	StageQuestionnaire Stage = "questionnaire"
	StageUnavailable   Stage = "unavailable"
	StageComplete      Stage = "complete"
)

// Wizard chains the intake stages: profile, service selection, the
// questionnaire, and completion. It is not safe for concurrent use; each
// wizard belongs to one interactive user.
type Wizard struct {
	catalog *catalog.Catalog
	stage   Stage
	form    *ProfileForm
	profile ProfileRecord
	session *Session

	requestedService string
}

// NewWizard starts a wizard at the profile stage.
func NewWizard(cat *catalog.Catalog) *Wizard {
	return &Wizard{
		catalog: cat,
		stage:   StageProfile,
		form:    NewProfileForm(),
	}
}

// Stage returns the current stage.
func (w *Wizard) Stage() Stage {
	return w.stage
}

// Profile returns the accepted profile once the profile stage is done.
func (w *Wizard) Profile() (ProfileRecord, bool) {
	return w.form.Record()
}

// Session returns the active questionnaire session, if any.
func (w *Wizard) Session() *Session {
	return w.session
}

// RequestedService is the service id of the last selection attempt. On the
// unavailable stage it names the service that had no questionnaire.
func (w *Wizard) RequestedService() string {
	return w.requestedService
}

// SubmitProfile validates the profile form and moves on to service selection.
func (w *Wizard) SubmitProfile(in ProfileInput) (ProfileRecord, error) {
	if w.stage != StageProfile {
		return ProfileRecord{}, ErrWrongStage
	}
	record, err := w.form.Submit(in)
	if err != nil {
		return ProfileRecord{}, err
	}
	w.profile = record
	w.stage = StageService
	return record, nil
}

// SelectService opens the questionnaire for serviceID. When the service has
// no questionnaire the wizard moves to the unavailable stage and returns
// ErrQuestionnaireUnavailable.
func (w *Wizard) SelectService(serviceID string) error {
	if w.stage != StageService && w.stage != StageUnavailable {
		return ErrWrongStage
	}
	w.requestedService = serviceID

	session, err := StartSession(w.catalog, serviceID, w.profile)
	if err != nil {
		if errors.Is(err, ErrQuestionnaireUnavailable) {
			w.stage = StageUnavailable
		}
		return err
	}
	w.session = session
	w.stage = StageQuestionnaire
	return nil
}

// BackToServices leaves the unavailable fallback for service selection.
func (w *Wizard) BackToServices() error {
	if w.stage != StageUnavailable {
		return ErrWrongStage
	}
	w.stage = StageService
	return nil
}

// Answer stores a whole answer for the current session.
func (w *Wizard) Answer(questionID string, value AnswerValue) error {
	if w.stage != StageQuestionnaire {
		return ErrWrongStage
	}
	return w.session.Answers.Set(questionID, value)
}

// Toggle adds or removes one option of a multi-choice answer.
func (w *Wizard) Toggle(questionID, option string, included bool) error {
	if w.stage != StageQuestionnaire {
		return ErrWrongStage
	}
	return w.session.Answers.ToggleSelection(questionID, option, included)
}

// Advance moves forward through the questionnaire; completing it moves the
// wizard to the complete stage.
func (w *Wizard) Advance() (Transition, error) {
	if w.stage != StageQuestionnaire {
		return "", ErrWrongStage
	}
	t := w.session.Navigator.Advance()
	if t == TransitionCompleted {
		w.stage = StageComplete
	}
	return t, nil
}

// Retreat moves back one question. On the first question it leaves the
// questionnaire for service selection and discards the session's answers.
func (w *Wizard) Retreat() (Transition, error) {
	if w.stage != StageQuestionnaire {
		return "", ErrWrongStage
	}
	t := w.session.Navigator.Retreat()
	if t == TransitionAtStart {
		w.session = nil
		w.stage = StageService
	}
	return t, nil
}

// JumpTo moves directly to a question, bypassing the required gate.
func (w *Wizard) JumpTo(index int) error {
	if w.stage != StageQuestionnaire {
		return ErrWrongStage
	}
	return w.session.Navigator.JumpTo(index)
}

// Completion returns the finished record once the wizard is complete.
func (w *Wizard) Completion() (Completion, bool) {
	if w.stage != StageComplete || w.session == nil {
		return Completion{}, false
	}
	return w.session.Completion()
}

// Restart discards everything and returns to an empty profile form.
func (w *Wizard) Restart() {
	w.stage = StageProfile
	w.form = NewProfileForm()
	w.profile = ProfileRecord{}
	w.session = nil
	w.requestedService = ""
}

package intake

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuestionnaireUnavailable means the chosen service is unknown or has
	// no questions configured. It is a configuration absence, not a fault.
	ErrQuestionnaireUnavailable = errors.New("no questionnaire configured for this service")

	// ErrUnknownQuestion means a question id is not part of the session's sequence.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrIndexOutOfRange is returned by JumpTo for an index outside the sequence.
	ErrIndexOutOfRange = errors.New("question index out of range")

	// ErrAlreadySubmitted is returned when a completed profile form is submitted again.
	ErrAlreadySubmitted = errors.New("profile already submitted")

	// ErrWrongStage means the wizard is not at the stage the operation belongs to.
	ErrWrongStage = errors.New("operation not allowed at the current stage")
)

// ShapeError reports an answer whose shape does not match its question's
// kind. It signals a caller bug: adapters build values from the kind.
type ShapeError struct {
	QuestionID string
	Kind       string
	Selection  bool
}

func (e *ShapeError) Error() string {
	shape := "text"
	if e.Selection {
		shape = "selection"
	}
	return fmt.Sprintf("question %s of kind %s cannot hold a %s answer", e.QuestionID, e.Kind, shape)
}

// ProfileError lists the mandatory profile fields that were left blank, and
// enumerated fields holding an unknown value.
type ProfileError struct {
	Missing []string
	Invalid []string
}

func (e *ProfileError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required profile fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid profile fields: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

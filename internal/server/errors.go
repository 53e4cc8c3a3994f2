// Package server provides the HTTP REST API of the intake wizard.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/webjhones/requirements-intake/internal/export"
	"github.com/webjhones/requirements-intake/internal/intake"
)

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrAdminNotFound indicates the admin behind a token no longer exists
type ErrAdminNotFound struct {
	AdminID uuid.UUID
}

func (e *ErrAdminNotFound) Error() string {
	return fmt.Sprintf("admin not found: %s", e.AdminID)
}

// ErrSessionNotFound indicates an unknown or expired wizard session
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrSubmissionNotFound indicates a missing persisted submission
type ErrSubmissionNotFound struct {
	SubmissionID uuid.UUID
}

func (e *ErrSubmissionNotFound) Error() string {
	return fmt.Sprintf("submission not found: %s", e.SubmissionID)
}

// ErrNotConfigured indicates a feature whose backing service is not configured
type ErrNotConfigured struct {
	Feature string
}

func (e *ErrNotConfigured) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrInvalidCredentials, *ErrAdminNotFound:
		return http.StatusUnauthorized
	case *ErrSessionNotFound, *ErrSubmissionNotFound:
		return http.StatusNotFound
	case *ErrNotConfigured:
		return http.StatusServiceUnavailable
	case *ErrValidation:
		return http.StatusBadRequest
	}

	var (
		profileErr *intake.ProfileError
		shapeErr   *intake.ShapeError
		exportErr  *export.Error
	)
	switch {
	case errors.As(err, &profileErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, intake.ErrQuestionnaireUnavailable):
		return http.StatusNotFound
	case errors.Is(err, intake.ErrWrongStage), errors.Is(err, intake.ErrAlreadySubmitted):
		return http.StatusConflict
	case errors.As(err, &shapeErr),
		errors.Is(err, intake.ErrUnknownQuestion),
		errors.Is(err, intake.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, export.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

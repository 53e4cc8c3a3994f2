package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/webjhones/requirements-intake/internal/types"
)

// AuthHandler handles admin authentication requests.
type AuthHandler struct {
	adminService *AdminService
	jwtService   *JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(adminService *AdminService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		adminService: adminService,
		jwtService:   jwtService,
	}
}

// Login handles admin login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	admin, err := h.adminService.Login(r.Context(), &req)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("admin login failed")
			writeError(w, status, "login failed")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(admin.ID)
	if err != nil {
		log.Error().Err(err).Str("admin_id", admin.ID.String()).Msg("failed to generate token")
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	log.Info().Str("admin_id", admin.ID.String()).Msg("admin logged in")
	writeJSON(w, http.StatusOK, types.LoginResponse{
		Admin:     admin,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		// Return first validation error for simplicity
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}

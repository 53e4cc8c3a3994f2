package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/webjhones/requirements-intake/internal/config"
	"github.com/webjhones/requirements-intake/internal/db"
	"github.com/webjhones/requirements-intake/internal/types"
)

// AdminService provides business logic for admin authentication
type AdminService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewAdminService creates a new AdminService with the given dependencies
func NewAdminService(db DBClient, passwordConfig *config.PasswordConfig) *AdminService {
	return &AdminService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// convertDBAdminToTypesAdmin converts db.Admin to types.Admin, excluding password hash
func convertDBAdminToTypesAdmin(dbAdmin *db.Admin) *types.Admin {
	if dbAdmin == nil {
		return nil
	}
	return &types.Admin{
		ID:        dbAdmin.ID,
		Email:     dbAdmin.Email,
		CreatedAt: dbAdmin.CreatedAt,
	}
}

// Login authenticates an admin and returns the admin data
func (s *AdminService) Login(ctx context.Context, req *types.LoginRequest) (*types.Admin, error) {
	dbAdmin, err := s.db.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	// Unknown e-mail and wrong password yield the same error
	if dbAdmin == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, dbAdmin.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return convertDBAdminToTypesAdmin(dbAdmin), nil
}

// Authorize checks that the admin behind a validated token still exists
func (s *AdminService) Authorize(ctx context.Context, adminID uuid.UUID) (*types.Admin, error) {
	dbAdmin, err := s.db.GetAdmin(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	if dbAdmin == nil {
		return nil, &ErrAdminNotFound{AdminID: adminID}
	}
	return convertDBAdminToTypesAdmin(dbAdmin), nil
}

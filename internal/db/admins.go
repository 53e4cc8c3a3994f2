package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrAdminExists is returned by CreateAdmin for a duplicate e-mail.
var ErrAdminExists = errors.New("admin already exists")

// CreateAdmin inserts an admin account. Emails are stored lowercased.
func (db *DB) CreateAdmin(ctx context.Context, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO admins (email, password_hash) VALUES ($1, $2) RETURNING id`,
		normalizeEmail(email), passwordHash,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, ErrAdminExists
		}
		return uuid.Nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return id, nil
}

// GetAdminByEmail retrieves an admin by e-mail. It returns nil, nil when no
// admin matches.
func (db *DB) GetAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	return db.getAdmin(ctx, `WHERE email = $1`, email)
}

// GetAdmin retrieves an admin by ID. It returns nil, nil when no admin matches.
func (db *DB) GetAdmin(ctx context.Context, id uuid.UUID) (*Admin, error) {
	return db.getAdmin(ctx, `WHERE id = $1`, id)
}

// UpdateAdminPassword replaces an admin's password hash.
func (db *DB) UpdateAdminPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE admins SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("admin not found: %s", id)
	}
	return nil
}

// DeleteAdmin removes an admin account.
func (db *DB) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	return nil
}

func (db *DB) getAdmin(ctx context.Context, where string, arg any) (*Admin, error) {
	var a Admin
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM admins `+where,
		arg,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &a, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

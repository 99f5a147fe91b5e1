package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Role is an account privilege level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ParseRole maps a raw role string to a known role. Anything outside the
// enumerated set coerces to the least-privileged role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleViewer:
		return Role(s)
	default:
		return RoleViewer
	}
}

// Account represents a stored dashboard account.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

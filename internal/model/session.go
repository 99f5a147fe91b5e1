package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore defines persistence operations for sessions.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	// GetByToken looks up a session by either its session token or its
	// remember token.
	GetByToken(ctx context.Context, token string) (Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

// Session represents an issued authentication session. A session always
// carries a short-lived bearer token; when the caller asked to be
// remembered it additionally carries an independent long-lived token with
// its own expiry. Expired rows are inert, they are not actively purged.
type Session struct {
	ID                uuid.UUID
	AccountID         uuid.UUID
	Token             string
	RememberToken     *string
	ExpiresAt         time.Time
	RememberExpiresAt *time.Time
	CreatedAt         time.Time
}

// ExpiryFor returns the expiry that applies to the given presented token.
func (s Session) ExpiryFor(token string) time.Time {
	if s.RememberToken != nil && *s.RememberToken == token && s.RememberExpiresAt != nil {
		return *s.RememberExpiresAt
	}
	return s.ExpiresAt
}

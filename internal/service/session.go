package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blacnova/dashboard-server/internal/logger"
	"github.com/blacnova/dashboard-server/internal/model"
	"github.com/blacnova/dashboard-server/internal/token"
)

// Session issues and validates opaque bearer sessions backed by the
// session store. Tokens are never renewed on read; expiry is decided at
// issuance.
type Session struct {
	sessionStore model.SessionStore
	accountStore model.AccountStore
	ttl          time.Duration
	rememberTTL  time.Duration
	logger       *logger.Logger
}

func NewSession(
	sessionStore model.SessionStore,
	accountStore model.AccountStore,
	ttl time.Duration,
	rememberTTL time.Duration,
	logger *logger.Logger,
) *Session {
	return &Session{
		sessionStore: sessionStore,
		accountStore: accountStore,
		ttl:          ttl,
		rememberTTL:  rememberTTL,
		logger:       logger,
	}
}

// Issue creates a session for the account. When remember is set the
// session also carries an independent long-lived token.
func (s *Session) Issue(ctx context.Context, account model.Account, remember bool) (model.Session, error) {
	sessionToken, err := token.New()
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := model.Session{
		ID:        uuid.New(),
		AccountID: account.ID,
		Token:     sessionToken,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	if remember {
		rememberToken, err := token.New()
		if err != nil {
			return model.Session{}, fmt.Errorf("failed to generate remember token: %w", err)
		}
		rememberExpires := now.Add(s.rememberTTL)
		session.RememberToken = &rememberToken
		session.RememberExpiresAt = &rememberExpires
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Debug("Session service: session issued",
		"account_id", account.ID,
		"remember", remember)

	return session, nil
}

// Validate resolves a presented token to the account it was issued for.
// Unknown and expired tokens fail with ErrUnauthenticated.
func (s *Session) Validate(ctx context.Context, presented string) (model.Account, error) {
	if presented == "" {
		return model.Account{}, model.ErrUnauthenticated
	}

	session, err := s.sessionStore.GetByToken(ctx, presented)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, model.ErrUnauthenticated
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get session by token: %w", err)
	}

	if time.Now().After(session.ExpiryFor(presented)) {
		s.logger.Debug("Session service: expired token presented",
			"account_id", session.AccountID)
		return model.Account{}, model.ErrUnauthenticated
	}

	account, err := s.accountStore.GetByID(ctx, session.AccountID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, model.ErrUnauthenticated
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

// Revoke deletes the session matching the presented token.
func (s *Session) Revoke(ctx context.Context, presented string) error {
	if presented == "" {
		return model.ErrUnauthenticated
	}

	err := s.sessionStore.DeleteByToken(ctx, presented)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrUnauthenticated
	}
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

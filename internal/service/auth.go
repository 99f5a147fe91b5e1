package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/blacnova/dashboard-server/internal/logger"
	"github.com/blacnova/dashboard-server/internal/model"
)

// DirectorySyncer mirrors new accounts into a remote directory document.
type DirectorySyncer interface {
	AppendAccountEntry(ctx context.Context, clientID string, account model.Account) error
}

// Auth verifies credentials and manages account records.
type Auth struct {
	accountStore    model.AccountStore
	sessions        *Session
	syncer          DirectorySyncer
	directoryClient string
	logger          *logger.Logger
}

func NewAuth(
	accountStore model.AccountStore,
	sessions *Session,
	syncer DirectorySyncer,
	directoryClient string,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		accountStore:    accountStore,
		sessions:        sessions,
		syncer:          syncer,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// CreateAccountParams contains parameters to create an account.
type CreateAccountParams struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// Login verifies the email/password pair and issues a session. Unknown
// email and wrong password both fail with the same opaque error.
func (a *Auth) Login(ctx context.Context, email, password string, remember bool) (model.Account, model.Session, error) {
	if email == "" || password == "" {
		return model.Account{}, model.Session{}, fmt.Errorf("%w: email and password are required", model.ErrInvalidInput)
	}

	account, err := a.accountStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, model.Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Account{}, model.Session{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		a.logger.Debug("Auth service: password mismatch",
			"account_id", account.ID)
		return model.Account{}, model.Session{}, model.ErrInvalidCredentials
	}

	session, err := a.sessions.Issue(ctx, account, remember)
	if err != nil {
		return model.Account{}, model.Session{}, fmt.Errorf("failed to issue session: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"account_id", account.ID,
		"role", account.Role)

	return account, session, nil
}

// CreateAccount registers a new account. Unknown roles coerce to viewer.
// When a directory client is configured the new account is mirrored into
// its remote document best-effort; the database row is the source of truth
// and a directory failure is logged, not returned.
func (a *Auth) CreateAccount(ctx context.Context, params CreateAccountParams) (model.Account, error) {
	if params.Email == "" || params.Password == "" || params.FullName == "" {
		return model.Account{}, fmt.Errorf("%w: email, password and full name are required", model.ErrInvalidInput)
	}

	existing, err := a.accountStore.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: account already exists",
			"email", params.Email)
		return model.Account{}, fmt.Errorf("%w: account with this email", model.ErrAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := model.Account{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: string(hash),
		FullName:     params.FullName,
		Role:         model.ParseRole(params.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := a.accountStore.Create(ctx, account)
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.Account{}, fmt.Errorf("%w: account with this email", model.ErrAlreadyExists)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	a.logger.Info("Auth service: account created",
		"account_id", saved.ID,
		"role", saved.Role)

	if a.directoryClient != "" && a.syncer != nil {
		if err := a.syncer.AppendAccountEntry(ctx, a.directoryClient, saved); err != nil {
			a.logger.Warn("Auth service: directory sync failed",
				"account_id", saved.ID,
				"client", a.directoryClient,
				"error", err.Error())
		}
	}

	return saved, nil
}

// DeleteAccount removes the account with the given id.
func (a *Auth) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	err := a.accountStore.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: account", model.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	a.logger.Info("Auth service: account deleted",
		"account_id", id)

	return nil
}

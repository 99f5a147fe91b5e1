//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/blacnova/dashboard-server/internal/model"
	repo "github.com/blacnova/dashboard-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "dashboard_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/dashboard_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newAccount(email string) model.Account {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return model.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefake",
		FullName:     "Test Account",
		Role:         model.RoleEditor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestAccountRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	accounts := repo.NewAccountRepository(conn)

	account := newAccount("crud@example.com")
	saved, err := accounts.Create(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, account.ID, saved.ID)
	assert.Equal(t, account.Email, saved.Email)
	assert.Equal(t, model.RoleEditor, saved.Role)

	byEmail, err := accounts.GetByEmail(ctx, account.Email)
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)

	byID, err := accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Email, byID.Email)

	_, err = accounts.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, accounts.Delete(ctx, account.ID))
	assert.ErrorIs(t, accounts.Delete(ctx, account.ID), model.ErrNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	accounts := repo.NewAccountRepository(conn)

	original := newAccount("dup@example.com")
	_, err = accounts.Create(ctx, original)
	require.NoError(t, err)

	dup := newAccount("dup@example.com")
	dup.FullName = "Impostor"
	_, err = accounts.Create(ctx, dup)
	require.True(t, errors.Is(err, model.ErrAlreadyExists))

	// Original row is unmodified.
	stored, err := accounts.GetByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, original.ID, stored.ID)
	assert.Equal(t, "Test Account", stored.FullName)
}

func TestSessionRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	accounts := repo.NewAccountRepository(conn)
	sessions := repo.NewSessionRepository(conn)

	account := newAccount("session@example.com")
	_, err = accounts.Create(ctx, account)
	require.NoError(t, err)

	remember := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	rememberExpires := time.Now().Add(720 * time.Hour).UTC().Truncate(time.Microsecond)
	session := model.Session{
		ID:                uuid.New(),
		AccountID:         account.ID,
		Token:             "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		RememberToken:     &remember,
		ExpiresAt:         time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond),
		RememberExpiresAt: &rememberExpires,
		CreatedAt:         time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, sessions.Create(ctx, session))

	byToken, err := sessions.GetByToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, byToken.ID)
	assert.Equal(t, account.ID, byToken.AccountID)

	byRemember, err := sessions.GetByToken(ctx, remember)
	require.NoError(t, err)
	assert.Equal(t, session.ID, byRemember.ID)

	_, err = sessions.GetByToken(ctx, "never-issued")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, sessions.DeleteByToken(ctx, session.Token))
	_, err = sessions.GetByToken(ctx, session.Token)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

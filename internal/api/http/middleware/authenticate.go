package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/blacnova/dashboard-server/internal/logger"
	"github.com/blacnova/dashboard-server/internal/model"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session_token"

// RememberCookie is the cookie carrying the long-lived remember token.
const RememberCookie = "remember_token"

// SessionValidator resolves a presented token to an account.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (model.Account, error)
}

// Authenticate validates session tokens and injects the account into the
// request context. The token is read from the session cookie first, then
// from the remember cookie, then from the Authorization header as a
// bearer token.
type Authenticate struct {
	sessions       SessionValidator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionValidator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		sessions:       sessions,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle authenticates the request or fails it with ErrUnauthenticated.
func (m *Authenticate) Handle(c *fiber.Ctx) error {
	token := TokenFromRequest(c)

	account, err := m.sessions.Validate(c.UserContext(), token)
	if err != nil {
		return err
	}

	m.contextManager.SetAccount(c, account)
	return c.Next()
}

// RequireAdmin fails the request unless the authenticated account holds
// the admin role. It must run after Handle.
func (m *Authenticate) RequireAdmin(c *fiber.Ctx) error {
	account, ok := m.contextManager.GetAccount(c)
	if !ok {
		return model.ErrUnauthenticated
	}
	if account.Role != model.RoleAdmin {
		m.logger.Debug("Authenticate middleware: admin route denied",
			"account_id", account.ID,
			"role", account.Role)
		return model.ErrForbidden
	}
	return c.Next()
}

// TokenFromRequest extracts a token from the request: the session cookie,
// then the remember cookie so a browser whose short-lived session expired
// stays signed in, then the Authorization header.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookie); token != "" {
		return token
	}
	if token := c.Cookies(RememberCookie); token != "" {
		return token
	}

	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

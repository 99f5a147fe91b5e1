package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/blacnova/dashboard-server/internal/api/http/middleware"
	"github.com/blacnova/dashboard-server/internal/logger"
	"github.com/blacnova/dashboard-server/internal/model"
	"github.com/blacnova/dashboard-server/internal/service"
)

// CookieSettings carries deploy-specific cookie attributes.
type CookieSettings struct {
	Domain string
	Secure bool
}

// Auth handles login and logout requests.
type Auth struct {
	auth     *service.Auth
	sessions *service.Session
	cookies  CookieSettings
	logger   *logger.Logger
}

// NewAuth creates a new Auth handler instance.
func NewAuth(auth *service.Auth, sessions *service.Session, cookies CookieSettings, logger *logger.Logger) *Auth {
	return &Auth{
		auth:     auth,
		sessions: sessions,
		cookies:  cookies,
		logger:   logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"rememberMe"`
}

type loginResponse struct {
	Success bool          `json:"success"`
	User    model.Account `json:"user"`
	Token   string        `json:"token"`
}

// Login verifies credentials, issues a session and sets session cookies.
func (h *Auth) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", model.ErrInvalidInput)
	}

	account, session, err := h.auth.Login(c.UserContext(), req.Email, req.Password, req.Remember)
	if err != nil {
		return err
	}

	h.setCookie(c, middleware.SessionCookie, session.Token, session.ExpiresAt)
	if session.RememberToken != nil && session.RememberExpiresAt != nil {
		h.setCookie(c, middleware.RememberCookie, *session.RememberToken, *session.RememberExpiresAt)
	}

	return c.JSON(loginResponse{
		Success: true,
		User:    account,
		Token:   session.Token,
	})
}

// Logout revokes the presented session and clears session cookies. An
// unauthenticated logout succeeds; there is nothing to revoke.
func (h *Auth) Logout(c *fiber.Ctx) error {
	token := middleware.TokenFromRequest(c)
	if token != "" {
		if err := h.sessions.Revoke(c.UserContext(), token); err != nil {
			h.logger.Debug("Auth handler: logout revoke failed",
				"error", err.Error())
		}
	}

	h.clearCookie(c, middleware.SessionCookie)
	h.clearCookie(c, middleware.RememberCookie)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "logged out",
	})
}

func (h *Auth) setCookie(c *fiber.Ctx, name, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookies.Domain,
		Expires:  expires,
		Secure:   h.cookies.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *Auth) clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.cookies.Domain,
		Expires:  time.Unix(0, 0),
		Secure:   h.cookies.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

package context

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blacnova/dashboard-server/internal/model"
)

// accountKey is the locals key used to store the authenticated account.
const accountKey = "account"

// Manager stores and retrieves the authenticated account on a request.
type Manager struct{}

// NewManager creates a new request context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetAccount attaches the authenticated account to the request.
func (m *Manager) SetAccount(c *fiber.Ctx, account model.Account) {
	c.Locals(accountKey, account)
}

// GetAccount retrieves the authenticated account from the request.
// The boolean reports whether an account was attached.
func (m *Manager) GetAccount(c *fiber.Ctx) (model.Account, bool) {
	account, ok := c.Locals(accountKey).(model.Account)
	return account, ok
}

package model

import "github.com/gofiber/fiber/v2"

// ContextManager stores and retrieves the authenticated account on a
// request.
type ContextManager interface {
	SetAccount(c *fiber.Ctx, account Account)
	GetAccount(c *fiber.Ctx) (Account, bool)
}

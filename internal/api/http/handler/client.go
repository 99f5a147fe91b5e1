package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/blacnova/dashboard-server/internal/model"
)

// Client serves per-client dashboard configuration.
type Client struct {
	registry model.ClientRegistry
}

// NewClient creates a new Client handler instance.
func NewClient(registry model.ClientRegistry) *Client {
	return &Client{registry: registry}
}

// GetConfig returns the dashboard profile for the client named in the
// query. The repo location is excluded from serialization.
func (h *Client) GetConfig(c *fiber.Ctx) error {
	clientID := c.Query("client")
	if clientID == "" {
		return fmt.Errorf("%w: client query parameter is required", model.ErrInvalidInput)
	}

	profile, ok := h.registry.Get(clientID)
	if !ok {
		return fmt.Errorf("%w: unknown client %q", model.ErrNotFound, clientID)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    profile,
	})
}

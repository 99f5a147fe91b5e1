package handler

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/blacnova/dashboard-server/internal/model"
	"github.com/blacnova/dashboard-server/internal/service"
)

// Content handles reads and writes of client content documents.
type Content struct {
	content *service.Content
}

// NewContent creates a new Content handler instance.
func NewContent(content *service.Content) *Content {
	return &Content{content: content}
}

// Get returns the current document and its version tag for a client.
func (h *Content) Get(c *fiber.Ctx) error {
	clientID := c.Query("client")
	if clientID == "" {
		return fmt.Errorf("%w: client query parameter is required", model.ErrInvalidInput)
	}

	doc, sha, err := h.content.Get(c.UserContext(), clientID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    doc,
		"sha":     sha,
	})
}

type updateContentRequest struct {
	Client  string          `json:"client"`
	Content json.RawMessage `json:"content"`
	Patch   map[string]any  `json:"patch"`
	SHA     string          `json:"sha"`
}

// Update commits a new document revision, either a full replacement or a
// dotted-path patch, and returns the committed document with its new
// version tag.
func (h *Content) Update(c *fiber.Ctx) error {
	var req updateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", model.ErrInvalidInput)
	}

	doc, sha, err := h.content.Update(c.UserContext(), service.UpdateContentParams{
		ClientID: req.Client,
		Replace:  req.Content,
		Patch:    req.Patch,
		SHA:      req.SHA,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "content updated",
		"data":    doc,
		"sha":     sha,
	})
}

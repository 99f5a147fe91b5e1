package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/blacnova/dashboard-server/internal/api/http/middleware"
	"github.com/blacnova/dashboard-server/internal/model"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorHandler translates errors into JSON error responses. Known domain
// errors carry their wrapped message; anything unrecognized gets a generic
// message so internal detail never leaks. Upstream failures keep their
// (already sanitized) message even though they report as 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(errorResponse{Message: fiberErr.Message})
	}

	status := middleware.StatusForError(err)

	message := "internal server error"
	if status != fiber.StatusInternalServerError ||
		errors.Is(err, model.ErrUpstream) || errors.Is(err, model.ErrUpstreamAuth) {
		message = err.Error()
	}

	return c.Status(status).JSON(errorResponse{Message: message})
}

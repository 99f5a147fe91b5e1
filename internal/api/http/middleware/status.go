package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/blacnova/dashboard-server/internal/model"
)

// StatusForError maps an error to the HTTP status it is reported with.
// Upstream failures count as internal errors: the caller sent a valid
// request that this server could not serve.
func StatusForError(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch {
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, model.ErrInvalidDocument):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrInvalidCredentials), errors.Is(err, model.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrAlreadyExists), errors.Is(err, model.ErrVersionConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

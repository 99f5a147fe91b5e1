package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/blacnova/dashboard-server/internal/logger"
)

// Logging logs every request with its method, path, status and duration.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, duration and status for each request.
func (l *Logging) Handle(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()

	duration := time.Since(start)

	// On failure the error handler has not run yet and the response still
	// says 200, so derive the status from the error instead.
	status := c.Response().StatusCode()
	if err != nil {
		status = StatusForError(err)
	}

	l.logger.Info("request completed",
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration_ms", duration.Milliseconds())

	if err != nil {
		l.logger.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error())
	}

	return err
}

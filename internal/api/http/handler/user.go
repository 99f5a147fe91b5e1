package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/blacnova/dashboard-server/internal/model"
	"github.com/blacnova/dashboard-server/internal/service"
)

// User handles account management requests. All routes require the admin
// role, enforced by middleware.
type User struct {
	auth *service.Auth
}

// NewUser creates a new User handler instance.
func NewUser(auth *service.Auth) *User {
	return &User{auth: auth}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Create registers a new account.
func (h *User) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", model.ErrInvalidInput)
	}

	account, err := h.auth.CreateAccount(c.UserContext(), service.CreateAccountParams{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    account,
	})
}

type deleteUserRequest struct {
	ID string `json:"userId"`
}

// Delete removes an account by id.
func (h *User) Delete(c *fiber.Ctx) error {
	var req deleteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", model.ErrInvalidInput)
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return fmt.Errorf("%w: malformed account id", model.ErrInvalidInput)
	}

	if err := h.auth.DeleteAccount(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "account deleted",
	})
}

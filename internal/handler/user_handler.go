package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/Livia-1212/user-management-final/internal/repository"
	"github.com/Livia-1212/user-management-final/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	user, err := h.userService.Register(c.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "email already in use",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user created successfully",
		"user":    user,
	})
}

// VerifyEmail handles email verification, both from the mailed link
// (query parameters) and from an API client (JSON body)
// GET|POST /api/v1/auth/verify-email
func (h *UserHandler) VerifyEmail(c *fiber.Ctx) error {
	req := struct {
		UserID string `json:"user_id"`
		Token  string `json:"token"`
	}{
		UserID: c.Query("user_id"),
		Token:  c.Query("token"),
	}

	if req.UserID == "" || req.Token == "" {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil || req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id and token are required",
		})
	}

	verified, err := h.userService.VerifyEmailWithToken(c.Context(), userID, req.Token)
	if err != nil {
		log.Printf("[USER_HANDLER] Email verification failed for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	if !verified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid verification token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "email verified successfully",
	})
}

// GetMe returns the current user's profile
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}

	user, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// List returns a page of users
// GET /api/v1/users?offset=0&limit=10
func (h *UserHandler) List(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	users, err := h.userService.List(c.Context(), offset, limit)
	if err != nil {
		log.Printf("[USER_HANDLER] Failed to list users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	total, err := h.userService.Count(c.Context())
	if err != nil {
		log.Printf("[USER_HANDLER] Failed to count users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"users":  users,
		"total":  total,
		"offset": offset,
		"limit":  limit,
	})
}

// GetByID returns one user
// GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	user, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// Update applies a partial update to a user. Role changes require the
// caller to be an admin.
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	actorID, ok := c.Locals("user_id").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}

	// Re-read the actor so the role check sees the current role, not
	// the one baked into the token
	actor, err := h.userService.GetByID(c.Context(), actorID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	user, err := h.userService.Update(c.Context(), userID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFieldsToUpdate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "no fields to update",
			})
		case errors.Is(err, service.ErrUnauthorized):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "only admins may change roles",
			})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		case errors.Is(err, repository.ErrDuplicateEmail):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "email already in use",
			})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// Delete removes a user
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	deleted, err := h.userService.Delete(c.Context(), userID)
	if err != nil {
		log.Printf("[USER_HANDLER] Failed to delete user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Invite creates a stub account for the invitee and emails them an
// invitation link
// POST /api/v1/users/invite
func (h *UserHandler) Invite(c *fiber.Ctx) error {
	inviterID, ok := c.Locals("user_id").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email is required",
		})
	}

	sent, err := h.userService.Invite(c.Context(), req.Email, inviterID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "email already registered or invited",
			})
		}
		log.Printf("[USER_HANDLER] Failed to invite %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	if !sent {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to send invitation",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "invitation sent",
	})
}

// ResetPassword sets a new password for a user, clearing any lockout
// POST /api/v1/admin/users/:id/reset-password
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	var req struct {
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	if err := c.BodyParser(&req); err != nil || len(req.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "new_password of at least 8 characters is required",
		})
	}

	ok, err := h.userService.ResetPassword(c.Context(), userID, req.NewPassword)
	if err != nil {
		log.Printf("[USER_HANDLER] Failed to reset password for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "password reset successfully",
	})
}

// Unlock clears the lock on a locked account
// POST /api/v1/admin/users/:id/unlock
func (h *UserHandler) Unlock(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	unlocked, err := h.userService.UnlockAccount(c.Context(), userID)
	if err != nil {
		log.Printf("[USER_HANDLER] Failed to unlock account %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	if !unlocked {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "account not found or not locked",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "account unlocked",
	})
}

package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/Livia-1212/user-management-final/internal/domain"
	"github.com/Livia-1212/user-management-final/internal/service"
	"github.com/Livia-1212/user-management-final/pkg/validator"
)

type AuthHandler struct {
	authService      *service.AuthService
	analyticsService *service.AnalyticsService
	validator        *validator.Validator
}

func NewAuthHandler(authService *service.AuthService, analyticsService *service.AnalyticsService, validator *validator.Validator) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		analyticsService: analyticsService,
		validator:        validator,
	}
}

// Login authenticates a user and issues a token pair
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp, err := h.authService.Login(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid credentials",
			})
		}
		log.Printf("[AUTH_HANDLER] Login failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	if err := h.analyticsService.LogUserActivity(c.Context(), resp.User.ID); err != nil {
		log.Printf("[AUTH_HANDLER] Failed to log user activity: %v", err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Refresh exchanges a refresh token for a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "refresh_token is required",
		})
	}

	tokens, err := h.authService.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid refresh token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

// Logout revokes the current access token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}
	token, _ := c.Locals("token").(string)

	if err := h.authService.Logout(c.Context(), token, claims); err != nil {
		log.Printf("[AUTH_HANDLER] Logout failed for %s: %v", claims.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "logged out",
	})
}

package handlers

import (
	"time"

	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/middleware"
	"github.com/bewithdhanu/medicine-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondError(c, errInvalidBody)
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) APIKeyInfo(c *fiber.Ctx) error {
	return c.JSON(h.authService.APIKeyInfo())
}

// Me reports the bearer token's subject and expiry.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token, ok := c.Locals(middleware.LocalToken).(*jwt.Token)
	if !ok {
		return RespondError(c, services.ErrInvalidToken)
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return RespondError(c, services.ErrInvalidToken)
	}

	resp := dto.MeResponse{Subject: sub}
	if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
		resp.ExpiresAt = exp.UTC().Format(time.RFC3339)
	}
	return c.JSON(resp)
}

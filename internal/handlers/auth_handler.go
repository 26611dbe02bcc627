package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RequestCode handles POST /auth/email: get-or-create by email, mail a
// confirmation code, 201 with no body.
func (h *AuthHandler) RequestCode(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.authService.RequestCode(req.Email); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusCreated)
}

// ExchangeCode handles POST /auth/token. A wrong code answers 404, same as
// an unknown email.
func (h *AuthHandler) ExchangeCode(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.ExchangeCode(req.Email, req.ConfirmationCode)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Refresh handles POST /auth/refresh with single-use rotation.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

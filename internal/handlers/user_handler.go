package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/middleware"
	"github.com/oguzhanyilmaz/reviewdb/internal/policy"
	"github.com/oguzhanyilmaz/reviewdb/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.List,
	}); err != nil {
		return err
	}

	users, page, err := h.userService.List(pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(listEnvelope("users", users, page))
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Retrieve,
	}); err != nil {
		return err
	}

	user, err := h.userService.GetByUsername(c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Create,
	}); err != nil {
		return err
	}

	var req dto.UserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Create(&req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Update,
	}); err != nil {
		return err
	}

	user, err := h.userService.GetByUsername(c.Params("username"))
	if err != nil {
		return err
	}

	var req dto.UserUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err = h.userService.Update(user, &req)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Delete,
	}); err != nil {
		return err
	}

	if err := h.userService.Delete(c.Params("username")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me returns the caller's own profile. Any authenticated user may use it,
// so no policy check beyond the auth middleware.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.userService.GetByID(middleware.Actor(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateMe lets the caller edit their own profile. The role field is
// dropped so nobody promotes themselves.
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	user, err := h.userService.GetByID(middleware.Actor(c).ID)
	if err != nil {
		return err
	}

	var req dto.UserUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Role = nil

	user, err = h.userService.Update(user, &req)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/middleware"
	"github.com/oguzhanyilmaz/reviewdb/internal/policy"
	"github.com/oguzhanyilmaz/reviewdb/internal/services"
)

type TitleHandler struct {
	titleService *services.TitleService
}

func NewTitleHandler(titleService *services.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

func (h *TitleHandler) List(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.List,
	}); err != nil {
		return err
	}

	filter := dto.TitleFilter{
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
		Name:     c.Query("name"),
	}
	if year := c.QueryInt("year", 0); year != 0 {
		filter.Year = &year
	}

	titles, page, err := h.titleService.List(filter, pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(listEnvelope("titles", titles, page))
}

func (h *TitleHandler) Get(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Retrieve,
	}); err != nil {
		return err
	}

	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	title, err := h.titleService.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(title)
}

func (h *TitleHandler) Create(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Create,
	}); err != nil {
		return err
	}

	var req dto.TitleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	title, err := h.titleService.Create(&req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(title)
}

func (h *TitleHandler) Update(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Update,
	}); err != nil {
		return err
	}

	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.TitleUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	title, err := h.titleService.Update(id, &req)
	if err != nil {
		return err
	}
	return c.JSON(title)
}

func (h *TitleHandler) Delete(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Delete,
	}); err != nil {
		return err
	}

	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.titleService.Delete(id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

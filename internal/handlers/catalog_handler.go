package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/middleware"
	"github.com/oguzhanyilmaz/reviewdb/internal/policy"
	"github.com/oguzhanyilmaz/reviewdb/internal/services"
)

// CatalogHandler serves both categories and genres; the two surfaces are
// identical apart from the entity.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.List,
	}); err != nil {
		return err
	}

	items, page, err := h.catalogService.ListCategories(c.Query("search"), pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(listEnvelope("categories", items, page))
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Create,
	}); err != nil {
		return err
	}

	var req dto.CatalogRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category, err := h.catalogService.CreateCategory(&req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Delete,
	}); err != nil {
		return err
	}

	if err := h.catalogService.DeleteCategory(c.Params("slug")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) ListGenres(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.List,
	}); err != nil {
		return err
	}

	items, page, err := h.catalogService.ListGenres(c.Query("search"), pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(listEnvelope("genres", items, page))
}

func (h *CatalogHandler) CreateGenre(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Create,
	}); err != nil {
		return err
	}

	var req dto.CatalogRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	genre, err := h.catalogService.CreateGenre(&req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(genre)
}

func (h *CatalogHandler) DeleteGenre(c *fiber.Ctx) error {
	if err := policy.Decide(policy.AdminOrReadOnly, policy.AuthContext{
		Actor: middleware.Actor(c), Method: policy.Delete,
	}); err != nil {
		return err
	}

	if err := h.catalogService.DeleteGenre(c.Params("slug")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

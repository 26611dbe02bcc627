// Package handlers contains the thin HTTP layer: parse the request, build
// the policy context, call a service, serialize. No business rules live here.
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/oguzhanyilmaz/reviewdb/internal/apperr"
	"github.com/oguzhanyilmaz/reviewdb/internal/services"
)

func pageParam(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

// uintParam parses a numeric path segment. A non-numeric id addresses
// nothing, so it reads as 404 rather than 400.
func uintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.NotFound(paramResource(name))
	}
	return uint(id), nil
}

func paramResource(name string) string {
	switch name {
	case "title_id":
		return "title"
	case "review_id":
		return "review"
	case "comment_id":
		return "comment"
	default:
		return "resource"
	}
}

func listEnvelope(key string, items interface{}, p services.Page) fiber.Map {
	return fiber.Map{
		"data": fiber.Map{
			key: items,
			"pagination": fiber.Map{
				"page":        p.Page,
				"limit":       p.Limit,
				"total":       p.Total,
				"total_pages": p.TotalPages(),
			},
		},
	}
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}

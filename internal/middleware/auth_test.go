package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzhanyilmaz/reviewdb/internal/config"
	"github.com/oguzhanyilmaz/reviewdb/internal/policy"
)

func optionalAuthApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret"}

	app := fiber.New()
	app.Use(OptionalAuth(cfg, nil))
	app.Get("/", func(c *fiber.Ctx) error {
		actor := Actor(c)
		if actor.Authenticated {
			return c.SendString("authenticated")
		}
		return c.SendString("anonymous")
	})
	return app
}

func TestOptionalAuth_NoHeaderIsAnonymous(t *testing.T) {
	app := optionalAuthApp(t)

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalAuth_MalformedHeader(t *testing.T) {
	app := optionalAuthApp(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Token abcdef")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalAuth_GarbageTokenRejected(t *testing.T) {
	app := optionalAuthApp(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	// Present-but-invalid is a 401, not a silent downgrade to anonymous.
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	app := fiber.New()
	app.Use(RequireAuth(cfg))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestActorDefaultsToAnonymous(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Equal(t, policy.Actor{}, Actor(c))
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

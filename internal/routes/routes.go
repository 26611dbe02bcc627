package routes

import (
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/oguzhanyilmaz/reviewdb/internal/config"
	"github.com/oguzhanyilmaz/reviewdb/internal/handlers"
	"github.com/oguzhanyilmaz/reviewdb/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	catalogHandler *handlers.CatalogHandler,
	titleHandler *handlers.TitleHandler,
	reviewHandler *handlers.ReviewHandler,
	commentHandler *handlers.CommentHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/email", authHandler.RequestCode)
	auth.Post("/token", authHandler.ExchangeCode)
	auth.Post("/refresh", authHandler.Refresh)

	// Catalog and content routes are readable anonymously; the policy layer
	// decides per method once the caller is resolved.
	optional := middleware.OptionalAuth(cfg, db)

	categories := api.Group("/categories", optional)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Delete("/:slug", catalogHandler.DeleteCategory)

	genres := api.Group("/genres", optional)
	genres.Get("/", catalogHandler.ListGenres)
	genres.Post("/", catalogHandler.CreateGenre)
	genres.Delete("/:slug", catalogHandler.DeleteGenre)

	titles := api.Group("/titles", optional)
	titles.Get("/", titleHandler.List)
	titles.Post("/", titleHandler.Create)
	titles.Get("/:id", titleHandler.Get)
	titles.Patch("/:id", titleHandler.Update)
	titles.Delete("/:id", titleHandler.Delete)

	reviews := api.Group("/titles/:title_id/reviews", optional)
	reviews.Get("/", reviewHandler.List)
	reviews.Post("/", reviewHandler.Create)
	reviews.Get("/:review_id", reviewHandler.Get)
	reviews.Patch("/:review_id", reviewHandler.Update)
	reviews.Delete("/:review_id", reviewHandler.Delete)

	comments := api.Group("/titles/:title_id/reviews/:review_id/comments", optional)
	comments.Get("/", commentHandler.List)
	comments.Post("/", commentHandler.Create)
	comments.Get("/:comment_id", commentHandler.Get)
	comments.Patch("/:comment_id", commentHandler.Update)
	comments.Delete("/:comment_id", commentHandler.Delete)

	// User management requires a valid token for every method. /me must be
	// registered before /:username so it is not captured as a username.
	users := api.Group("/users", middleware.RequireAuth(cfg), middleware.ResolveActor(db))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/me", userHandler.Me)
	users.Patch("/me", userHandler.UpdateMe)
	users.Get("/:username", userHandler.Get)
	users.Patch("/:username", userHandler.Update)
	users.Delete("/:username", userHandler.Delete)
}

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"github.com/oguzhanyilmaz/reviewdb/internal/apperr"
	"github.com/oguzhanyilmaz/reviewdb/internal/config"
	"github.com/oguzhanyilmaz/reviewdb/internal/database"
	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/handlers"
	"github.com/oguzhanyilmaz/reviewdb/internal/logging"
	"github.com/oguzhanyilmaz/reviewdb/internal/mailer"
	"github.com/oguzhanyilmaz/reviewdb/internal/metrics"
	"github.com/oguzhanyilmaz/reviewdb/internal/middleware"
	"github.com/oguzhanyilmaz/reviewdb/internal/routes"
	"github.com/oguzhanyilmaz/reviewdb/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewStdoutHandler(),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cleanupDone)

	sender := mailer.FromConfig(cfg)

	// Services
	authService := services.NewAuthService(db, cfg, sender)
	userService := services.NewUserService(db, cfg.PageSize)
	catalogService := services.NewCatalogService(db, cfg.PageSize)
	titleService := services.NewTitleService(db, cfg.PageSize)
	reviewService := services.NewReviewService(db, cfg.PageSize)
	commentService := services.NewCommentService(db, reviewService, cfg.PageSize)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	titleHandler := handlers.NewTitleHandler(titleService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	commentHandler := handlers.NewCommentHandler(commentService)
	healthHandler := handlers.NewHealthHandler(db)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Env,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(metrics.Middleware())
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, db,
		authHandler, userHandler, catalogHandler,
		titleHandler, reviewHandler, commentHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// errorHandler maps the service error taxonomy to HTTP exactly once, at the
// edge. Causes of 5xx errors are logged, never serialized.
func errorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := apperr.As(err); ok {
		code := appErr.Status()
		if code >= 500 {
			cause := appErr.Unwrap()
			if cause == nil {
				cause = appErr
			}
			slog.Error("unhandled server error",
				"method", c.Method(), "path", c.Path(), "error", cause.Error())
		}
		return c.Status(code).JSON(dto.ErrorResponse{
			Error:   true,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		})
	}

	code := fiber.StatusInternalServerError
	message := "internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

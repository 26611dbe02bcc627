package middleware

import (
	"strconv"
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/oguzhanyilmaz/reviewdb/internal/config"
	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/models"
	"github.com/oguzhanyilmaz/reviewdb/internal/policy"
)

const actorKey = "actor"

// RequireAuth rejects requests without a valid bearer token. Used on route
// groups where every method needs an authenticated caller.
func RequireAuth(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "authentication required",
			})
		},
	})
}

// ResolveActor turns the JWT parsed by RequireAuth into a policy.Actor. The
// user row is re-read so role changes and deletions take effect before the
// access token expires.
func ResolveActor(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "authentication required",
			})
		}
		actor, err := actorFromToken(db, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "authentication required",
			})
		}
		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// OptionalAuth resolves a bearer token when one is present and otherwise
// lets the request through as anonymous. A token that is present but
// invalid is still a 401: silent downgrade to anonymous would turn an
// expired token into confusing 403s further in.
func OptionalAuth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			c.Locals(actorKey, policy.Actor{})
			return c.Next()
		}

		raw := strings.TrimPrefix(authHeader, "Bearer ")
		if raw == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "invalid authorization header",
			})
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "invalid or expired token",
			})
		}

		actor, err := actorFromToken(db, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "invalid or expired token",
			})
		}
		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// Actor returns the resolved caller; the zero Actor is anonymous.
func Actor(c *fiber.Ctx) policy.Actor {
	if actor, ok := c.Locals(actorKey).(policy.Actor); ok {
		return actor
	}
	return policy.Actor{}
}

func actorFromToken(db *gorm.DB, token *jwt.Token) (policy.Actor, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return policy.Actor{}, jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return policy.Actor{}, jwt.ErrTokenInvalidClaims
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return policy.Actor{}, jwt.ErrTokenInvalidClaims
	}

	var user models.User
	if err := db.First(&user, uint(id)).Error; err != nil {
		return policy.Actor{}, err
	}

	return policy.Actor{ID: user.ID, Role: user.Role, Authenticated: true}, nil
}

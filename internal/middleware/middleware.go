package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"BloodLink/domain"
	"BloodLink/internal/api/presenters"
	"BloodLink/pkg/jwt"
)

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OnlyRole(roles ...string) fiber.Handler
		CORSMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		userID, role, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

// OnlyRole rejects requests whose token role is not in the allowed set.
func (m *middleware) OnlyRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAllowed, domain.ErrUserNotAllowed)
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE",
	})
}

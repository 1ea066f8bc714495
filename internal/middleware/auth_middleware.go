package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"moderation-api/internal/config"
	"moderation-api/internal/models"
	"moderation-api/internal/services"
	"moderation-api/pkg/database"
	"moderation-api/pkg/utils"
)

// RequireAuth middleware for routes that require authentication
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, config.Messages.Auth.Error.TokenRequired, nil)
		}

		jwtService := services.NewJWTService()
		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, config.Messages.Auth.Error.InvalidToken, nil)
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, config.Messages.Auth.Error.InvalidToken, nil)
		}

		// Moderation state is re-checked per request; a token issued before a
		// ban or suspension must not keep working.
		if !user.CanLogin() {
			return utils.ErrorResponse(c, fiber.StatusForbidden, blockedMessage(user), nil)
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// RequireAdmin middleware for admin-only routes
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals("user").(models.User)
		if !user.IsAdmin() {
			return utils.ErrorResponse(c, fiber.StatusForbidden, config.Messages.Auth.Error.AdminRequired, nil)
		}
		return c.Next()
	}
}

func blockedMessage(user models.User) string {
	switch {
	case user.IsBanned():
		return config.Messages.Auth.Error.AccountBanned
	case user.IsSuspended():
		return config.Messages.Auth.Error.AccountSuspended
	default:
		return config.Messages.Auth.Error.AccountBlocked
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	tokenHeader := c.Get("Authorization")
	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		return "", fmt.Errorf("token required")
	}

	return strings.TrimPrefix(tokenHeader, "Bearer "), nil
}

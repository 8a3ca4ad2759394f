package auth

import (
	"strings"

	"scholarship-backend/internal/config"
	"scholarship-backend/internal/database"
	"scholarship-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	// CookieName is the HTTP-only session cookie set at login/registration.
	CookieName = "token"

	ctxUserKey = "current_user"
)

// tokenFromRequest checks the session cookie first, then falls back to the
// Authorization header for clients that cannot carry cookies (Safari ITP,
// cross-origin mobile apps).
func tokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(CookieName); cookie != "" {
		return cookie
	}
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// Protect verifies the session token and attaches the resolved user to the
// request. The subject is looked up in the database so tokens for deleted
// accounts stop working immediately.
func Protect(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized, no token")
		}

		claims, err := ParseToken(cfg.JWTSecret, tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found with this token")
		}

		c.Locals(ctxUserKey, &user)
		return c.Next()
	}
}

// RequireRole gates a route on the roles resolved by Protect. Pure predicate,
// must run after Protect.
func RequireRole(allowed ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return fiber.NewError(fiber.StatusForbidden, "Not authorized for this route")
		}
		for _, r := range allowed {
			if r == user.Role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Not authorized for this route")
	}
}

// CurrentUser returns the identity attached by Protect, or nil on public routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(ctxUserKey).(*models.User)
	return user
}

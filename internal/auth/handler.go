package auth

import (
	"errors"
	"strings"
	"time"

	"scholarship-backend/internal/config"
	"scholarship-backend/internal/database"
	"scholarship-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// sendTokenResponse signs a token and returns it on both channels: an
// HTTP-only cookie and the JSON body (for clients that cannot use cookies).
func sendTokenResponse(c *fiber.Ctx, cfg *config.Config, user *models.User, status int) error {
	token, err := GenerateToken(cfg.JWTSecret, cfg.JWTExpiresIn, user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
	}

	sameSite := fiber.CookieSameSiteLaxMode
	if cfg.IsProduction() {
		// Cross-site admin frontend; None requires Secure.
		sameSite = fiber.CookieSameSiteNoneMode
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(cfg.JWTExpiresIn),
		HTTPOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: sameSite,
		Path:     "/",
	})

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user": userResponse{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
				Role:  user.Role,
			},
			"token": token,
		},
	})
}

func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.ToLower(strings.TrimSpace(body.Email))

		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required")
		}

		role := models.RoleUser
		if body.Role != "" {
			role = models.Role(body.Role)
			if !role.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid role")
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         role,
		}

		// The unique index on email is the arbiter for concurrent
		// registrations; no pre-check.
		if err := database.DB.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Email already in use")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
		}

		return sendTokenResponse(c, cfg, &user, fiber.StatusCreated)
	}
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.ToLower(strings.TrimSpace(body.Email))

		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Please provide email and password")
		}

		// Unknown email and wrong password must be indistinguishable to the
		// caller (account enumeration).
		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}

		return sendTokenResponse(c, cfg, &user, fiber.StatusOK)
	}
}

// LogoutHandler clears the session cookie. There is no server-side token
// state to invalidate; bearer tokens stay valid until they expire.
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Path:     "/",
		})
		return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
	}
}

// VerifyHandler resolves the current identity. Must run behind Protect.
func VerifyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		return c.JSON(fiber.Map{
			"success": true,
			"data": userResponse{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
				Role:  user.Role,
			},
		})
	}
}

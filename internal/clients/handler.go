package clients

import (
	"errors"
	"strconv"
	"strings"

	"scholarship-backend/internal/config"
	"scholarship-backend/internal/database"
	"scholarship-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UpdateClientRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

type clientResponse struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func toResponse(u models.User) clientResponse {
	return clientResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return uint(id), nil
}

func ListClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list clients")
		}

		res := make([]clientResponse, 0, len(users))
		for _, u := range users {
			res = append(res, toResponse(u))
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(res),
			"data":    res,
		})
	}
}

func GetClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Client not found")
		}

		return c.JSON(fiber.Map{"success": true, "data": toResponse(user)})
	}
}

func UpdateClientHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Client not found")
		}

		// The designated super admin account is immutable, even for admins.
		if user.Email == cfg.SuperAdminEmail {
			return fiber.NewError(fiber.StatusForbidden, "You cannot modify the super admin account")
		}

		var body UpdateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
			user.Name = strings.TrimSpace(*body.Name)
		}
		if body.Email != nil && strings.TrimSpace(*body.Email) != "" {
			user.Email = strings.ToLower(strings.TrimSpace(*body.Email))
		}
		if body.Role != nil {
			role := models.Role(*body.Role)
			if !role.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid role")
			}
			user.Role = role
		}

		if err := database.DB.Save(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Email already in use")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update client")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Client updated successfully",
			"data":    toResponse(user),
		})
	}
}

func DeleteClientHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Client not found")
		}

		if user.Email == cfg.SuperAdminEmail {
			return fiber.NewError(fiber.StatusForbidden, "You cannot delete the super admin account")
		}

		if err := database.DB.Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete client")
		}

		return c.JSON(fiber.Map{"success": true, "message": "Client deleted successfully"})
	}
}

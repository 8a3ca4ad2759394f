package visa

import (
	"log"
	"math"
	"strconv"

	"scholarship-backend/internal/auth"
	"scholarship-backend/internal/database"
	"scholarship-backend/internal/media"
	"scholarship-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	uploadField  = "image"
	uploadFolder = "visas"
)

type CreateVisaRequest struct {
	Country        string            `json:"country" form:"country"`
	Title          string            `json:"title" form:"title"`
	Description    string            `json:"description" form:"description"`
	Requirements   models.StringList `json:"requirements" form:"requirements"`
	ProcessingTime string            `json:"processingTime" form:"processingTime"`
	Fee            string            `json:"fee" form:"fee"`
}

type UpdateVisaRequest struct {
	Country        *string            `json:"country" form:"country"`
	Title          *string            `json:"title" form:"title"`
	Description    *string            `json:"description" form:"description"`
	Requirements   *models.StringList `json:"requirements" form:"requirements"`
	ProcessingTime *string            `json:"processingTime" form:"processingTime"`
	Fee            *string            `json:"fee" form:"fee"`
}

type creatorResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type visaResponse struct {
	models.Visa
	CreatedBy *creatorResponse `json:"createdBy,omitempty"`
}

func toResponse(v models.Visa) visaResponse {
	r := visaResponse{Visa: v}
	if v.CreatedBy != nil {
		r.CreatedBy = &creatorResponse{Name: v.CreatedBy.Name, Email: v.CreatedBy.Email}
	}
	r.Visa.CreatedBy = nil
	return r
}

func toResponses(items []models.Visa) []visaResponse {
	res := make([]visaResponse, 0, len(items))
	for _, v := range items {
		res = append(res, toResponse(v))
	}
	return res
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return uint(id), nil
}

func ListVisasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		if page < 1 {
			page = 1
		}
		limit := c.QueryInt("limit", 20)
		if limit < 1 {
			limit = 20
		}

		query := database.DB.Model(&models.Visa{})
		if v := c.Query("country"); v != "" {
			query = query.Where("country = ?", v)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list visas")
		}

		var items []models.Visa
		if err := query.Preload("CreatedBy").
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list visas")
		}

		return c.JSON(fiber.Map{
			"success":     true,
			"count":       len(items),
			"total":       total,
			"totalPages":  int(math.Ceil(float64(total) / float64(limit))),
			"currentPage": page,
			"limit":       limit,
			"data":        toResponses(items),
		})
	}
}

func GetVisaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var item models.Visa
		if err := database.DB.Preload("CreatedBy").First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Visa not found")
		}

		return c.JSON(fiber.Map{"success": true, "data": toResponse(item)})
	}
}

func CreateVisaHandler(store media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateVisaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Country == "" || body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Country and title are required")
		}

		item := models.Visa{
			Country:        body.Country,
			Title:          body.Title,
			Description:    body.Description,
			Requirements:   body.Requirements,
			ProcessingTime: body.ProcessingTime,
			Fee:            body.Fee,
			CreatedByID:    auth.CurrentUser(c).ID,
		}

		if file, err := c.FormFile(uploadField); err == nil && file != nil {
			ref, err := store.Upload(c.Context(), file, uploadFolder)
			if err != nil {
				return fiber.NewError(fiber.StatusBadGateway, "Could not upload file")
			}
			item.Image = ref
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create visa")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": toResponse(item)})
	}
}

func UpdateVisaHandler(store media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var item models.Visa
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Visa not found")
		}

		var body UpdateVisaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Country != nil {
			item.Country = *body.Country
		}
		if body.Title != nil {
			item.Title = *body.Title
		}
		if body.Description != nil {
			item.Description = *body.Description
		}
		if body.Requirements != nil {
			item.Requirements = *body.Requirements
		}
		if body.ProcessingTime != nil {
			item.ProcessingTime = *body.ProcessingTime
		}
		if body.Fee != nil {
			item.Fee = *body.Fee
		}

		// Unlike scholarships, visas keep their original creator.

		oldImage := item.Image
		replaced := false
		if file, err := c.FormFile(uploadField); err == nil && file != nil {
			ref, err := store.Upload(c.Context(), file, uploadFolder)
			if err != nil {
				return fiber.NewError(fiber.StatusBadGateway, "Could not upload file")
			}
			item.Image = ref
			replaced = true
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update visa")
		}

		if replaced && !oldImage.Empty() {
			if err := store.Delete(c.Context(), oldImage.PublicID, oldImage.ResourceType); err != nil {
				log.Printf("[WARN] could not delete replaced media %s: %v", oldImage.PublicID, err)
			}
		}

		return c.JSON(fiber.Map{"success": true, "data": toResponse(item)})
	}
}

func DeleteVisaHandler(store media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var item models.Visa
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Visa not found")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete visa")
		}

		if !item.Image.Empty() {
			if err := store.Delete(c.Context(), item.Image.PublicID, item.Image.ResourceType); err != nil {
				log.Printf("[WARN] could not delete media %s: %v", item.Image.PublicID, err)
			}
		}

		return c.JSON(fiber.Map{"success": true, "message": "Deleted"})
	}
}

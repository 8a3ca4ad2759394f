package testimonial

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

// Testimonial media can be an image or a video; the host decides from the
// file itself.
const (
	uploadField  = "media"
	uploadFolder = "testimonials"
)

type CreateTestimonialRequest struct {
	Name    string `json:"name" form:"name"`
	Message string `json:"message" form:"message"`
}

type UpdateTestimonialRequest struct {
	Name     *string `json:"name" form:"name"`
	Message  *string `json:"message" form:"message"`
	Approved *bool   `json:"approved" form:"approved"`
}

type creatorResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type testimonialResponse struct {
	models.Testimonial
	CreatedBy *creatorResponse `json:"createdBy,omitempty"`
}

func toResponse(t models.Testimonial) testimonialResponse {
	r := testimonialResponse{Testimonial: t}
	if t.CreatedBy != nil {
		r.CreatedBy = &creatorResponse{Name: t.CreatedBy.Name, Email: t.CreatedBy.Email}
	}
	r.Testimonial.CreatedBy = nil
	return r
}

func toResponses(items []models.Testimonial) []testimonialResponse {
	res := make([]testimonialResponse, 0, len(items))
	for _, t := range items {
		res = append(res, toResponse(t))
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

func ListTestimonialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		if page < 1 {
			page = 1
		}
		limit := c.QueryInt("limit", 20)
		if limit < 1 {
			limit = 20
		}

		query := database.DB.Model(&models.Testimonial{})
		if v := c.Query("approved"); v != "" {
			query = query.Where("approved = ?", v == "true")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list testimonials")
		}

		var items []models.Testimonial
		if err := query.Preload("CreatedBy").
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list testimonials")
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

func GetTestimonialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var item models.Testimonial
		if err := database.DB.Preload("CreatedBy").First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Testimonial not found")
		}

		return c.JSON(fiber.Map{"success": true, "data": toResponse(item)})
	}
}

func CreateTestimonialHandler(store media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTestimonialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name == "" || body.Message == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and message are required")
		}

		item := models.Testimonial{
			Name:        body.Name,
			Message:     body.Message,
			CreatedByID: auth.CurrentUser(c).ID,
		}

		if file, err := c.FormFile(uploadField); err == nil && file != nil {
			ref, err := store.Upload(c.Context(), file, uploadFolder)
			if err != nil {
				return fiber.NewError(fiber.StatusBadGateway, "Could not upload file")
			}
			item.Media = ref
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create testimonial")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": toResponse(item)})
	}
}

func UpdateTestimonialHandler(store media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var item models.Testimonial
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Testimonial not found")
		}

		var body UpdateTestimonialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			item.Name = *body.Name
		}
		if body.Message != nil {
			item.Message = *body.Message
		}
		if body.Approved != nil {
			item.Approved = *body.Approved
		}

		oldMedia := item.Media
		replaced := false
		if file, err := c.FormFile(uploadField); err == nil && file != nil {
			ref, err := store.Upload(c.Context(), file, uploadFolder)
			if err != nil {
				return fiber.NewError(fiber.StatusBadGateway, "Could not upload file")
			}
			item.Media = ref
			replaced = true
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update testimonial")
		}

		if replaced && !oldMedia.Empty() {
			if err := store.Delete(c.Context(), oldMedia.PublicID, oldMedia.ResourceType); err != nil {
				log.Printf("[WARN] could not delete replaced media %s: %v", oldMedia.PublicID, err)
			}
		}

		return c.JSON(fiber.Map{"success": true, "data": toResponse(item)})
	}
}

func DeleteTestimonialHandler(store media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var item models.Testimonial
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Testimonial not found")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete testimonial")
		}

		// Videos must be destroyed with the stored resource type.
		if !item.Media.Empty() {
			if err := store.Delete(c.Context(), item.Media.PublicID, item.Media.ResourceType); err != nil {
				log.Printf("[WARN] could not delete media %s: %v", item.Media.PublicID, err)
			}
		}

		return c.JSON(fiber.Map{"success": true, "message": "Deleted"})
	}
}

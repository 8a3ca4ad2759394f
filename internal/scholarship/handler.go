package scholarship

import (
	"log"
	"math"
	"strconv"
	"time"

	"scholarship-backend/internal/auth"
	"scholarship-backend/internal/database"
	"scholarship-backend/internal/media"
	"scholarship-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Upload descriptor for this entity, resolved once at startup: the multipart
// field name and the folder on the media host.
const (
	uploadField  = "image"
	uploadFolder = "scholarships"
)

type CreateScholarshipRequest struct {
	Institution       string            `json:"institution" form:"institution"`
	Title             string            `json:"title" form:"title"`
	Description       string            `json:"description" form:"description"`
	HostCountry       string            `json:"hostCountry" form:"hostCountry"`
	Category          string            `json:"category" form:"category"`
	EligibleCountries models.StringList `json:"eligibleCountries" form:"eligibleCountries"`
	Reward            string            `json:"reward" form:"reward"`
	Stipend           string            `json:"stipend" form:"stipend"`
	Deadline          string            `json:"deadline" form:"deadline"`
	HealthInsurance   bool              `json:"healthInsurance" form:"healthInsurance"`
	IeltsRequired     bool              `json:"ieltsRequired" form:"ieltsRequired"`
	FullyFunded       bool              `json:"fullyFunded" form:"fullyFunded"`
}

type UpdateScholarshipRequest struct {
	Institution       *string            `json:"institution" form:"institution"`
	Title             *string            `json:"title" form:"title"`
	Description       *string            `json:"description" form:"description"`
	HostCountry       *string            `json:"hostCountry" form:"hostCountry"`
	Category          *string            `json:"category" form:"category"`
	EligibleCountries *models.StringList `json:"eligibleCountries" form:"eligibleCountries"`
	Reward            *string            `json:"reward" form:"reward"`
	Stipend           *string            `json:"stipend" form:"stipend"`
	Deadline          *string            `json:"deadline" form:"deadline"`
	HealthInsurance   *bool              `json:"healthInsurance" form:"healthInsurance"`
	IeltsRequired     *bool              `json:"ieltsRequired" form:"ieltsRequired"`
	FullyFunded       *bool              `json:"fullyFunded" form:"fullyFunded"`
}

type creatorResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type scholarshipResponse struct {
	models.Scholarship
	CreatedBy *creatorResponse `json:"createdBy,omitempty"`
}

func toResponse(s models.Scholarship) scholarshipResponse {
	r := scholarshipResponse{Scholarship: s}
	if s.CreatedBy != nil {
		r.CreatedBy = &creatorResponse{Name: s.CreatedBy.Name, Email: s.CreatedBy.Email}
	}
	r.Scholarship.CreatedBy = nil
	return r
}

func toResponses(items []models.Scholarship) []scholarshipResponse {
	res := make([]scholarshipResponse, 0, len(items))
	for _, s := range items {
		res = append(res, toResponse(s))
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

func parseDeadline(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid deadline date")
	}
	return &t, nil
}

func ListScholarshipsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		if page < 1 {
			page = 1
		}
		limit := c.QueryInt("limit", 20)
		if limit < 1 {
			limit = 20
		}

		query := database.DB.Model(&models.Scholarship{})
		if v := c.Query("hostCountry"); v != "" {
			query = query.Where("host_country = ?", v)
		}
		if v := c.Query("category"); v != "" {
			query = query.Where("category = ?", v)
		}
		if v := c.Query("fullyFunded"); v != "" {
			query = query.Where("fully_funded = ?", v == "true")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list scholarships")
		}

		var items []models.Scholarship
		if err := query.Preload("CreatedBy").
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list scholarships")
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

func GetScholarshipHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var item models.Scholarship
		if err := database.DB.Preload("CreatedBy").First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Scholarship not found")
		}

		return c.JSON(fiber.Map{"success": true, "data": toResponse(item)})
	}
}

// RelatedScholarshipsHandler lists scholarships sharing a category or host
// country with the given one, newest first.
func RelatedScholarshipsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var item models.Scholarship
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Scholarship not found")
		}

		var items []models.Scholarship
		if err := database.DB.
			Where("id <> ? AND (category = ? OR host_country = ?)", item.ID, item.Category, item.HostCountry).
			Order("created_at DESC").
			Limit(6).
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list related scholarships")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(items),
			"data":    toResponses(items),
		})
	}
}

func RecentPostsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.Scholarship
		if err := database.DB.
			Order("created_at DESC").
			Limit(5).
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list recent scholarships")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(items),
			"data":    toResponses(items),
		})
	}
}

func CreateScholarshipHandler(store media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateScholarshipRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Institution == "" || body.Title == "" || body.Description == "" ||
			body.HostCountry == "" || body.Category == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Institution, title, description, host country and category are required")
		}

		deadline, err := parseDeadline(body.Deadline)
		if err != nil {
			return err
		}

		item := models.Scholarship{
			Institution:       body.Institution,
			Title:             body.Title,
			Description:       body.Description,
			HostCountry:       body.HostCountry,
			Category:          body.Category,
			EligibleCountries: body.EligibleCountries,
			Reward:            body.Reward,
			Stipend:           body.Stipend,
			Deadline:          deadline,
			HealthInsurance:   body.HealthInsurance,
			IeltsRequired:     body.IeltsRequired,
			FullyFunded:       body.FullyFunded,
			CreatedByID:       auth.CurrentUser(c).ID,
		}

		// A failed upload aborts the create, nothing is persisted.
		if file, err := c.FormFile(uploadField); err == nil && file != nil {
			ref, err := store.Upload(c.Context(), file, uploadFolder)
			if err != nil {
				return fiber.NewError(fiber.StatusBadGateway, "Could not upload file")
			}
			item.Image = ref
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create scholarship")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": toResponse(item)})
	}
}

func UpdateScholarshipHandler(store media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var item models.Scholarship
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Scholarship not found")
		}

		var body UpdateScholarshipRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Institution != nil {
			item.Institution = *body.Institution
		}
		if body.Title != nil {
			item.Title = *body.Title
		}
		if body.Description != nil {
			item.Description = *body.Description
		}
		if body.HostCountry != nil {
			item.HostCountry = *body.HostCountry
		}
		if body.Category != nil {
			item.Category = *body.Category
		}
		if body.EligibleCountries != nil {
			item.EligibleCountries = *body.EligibleCountries
		}
		if body.Reward != nil {
			item.Reward = *body.Reward
		}
		if body.Stipend != nil {
			item.Stipend = *body.Stipend
		}
		if body.Deadline != nil {
			deadline, err := parseDeadline(*body.Deadline)
			if err != nil {
				return err
			}
			item.Deadline = deadline
		}
		if body.HealthInsurance != nil {
			item.HealthInsurance = *body.HealthInsurance
		}
		if body.IeltsRequired != nil {
			item.IeltsRequired = *body.IeltsRequired
		}
		if body.FullyFunded != nil {
			item.FullyFunded = *body.FullyFunded
		}

		// Ownership is reassigned to whoever edits, matching how the admin
		// frontend treats scholarship posts.
		item.CreatedByID = auth.CurrentUser(c).ID
		item.CreatedBy = nil

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
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update scholarship")
		}

		// Best effort, the record already points at the new asset.
		if replaced && !oldImage.Empty() {
			if err := store.Delete(c.Context(), oldImage.PublicID, oldImage.ResourceType); err != nil {
				log.Printf("[WARN] could not delete replaced media %s: %v", oldImage.PublicID, err)
			}
		}

		return c.JSON(fiber.Map{"success": true, "data": toResponse(item)})
	}
}

func DeleteScholarshipHandler(store media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var item models.Scholarship
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Scholarship not found")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete scholarship")
		}

		// Best effort, the record is already gone.
		if !item.Image.Empty() {
			if err := store.Delete(c.Context(), item.Image.PublicID, item.Image.ResourceType); err != nil {
				log.Printf("[WARN] could not delete media %s: %v", item.Image.PublicID, err)
			}
		}

		return c.JSON(fiber.Map{"success": true, "message": "Deleted"})
	}
}

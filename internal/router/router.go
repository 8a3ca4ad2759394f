package router

import (
	"log"
	"strings"

	"scholarship-backend/internal/auth"
	"scholarship-backend/internal/clients"
	"scholarship-backend/internal/config"
	"scholarship-backend/internal/enquiry"
	"scholarship-backend/internal/mailer"
	"scholarship-backend/internal/media"
	"scholarship-backend/internal/models"
	"scholarship-backend/internal/scholarship"
	"scholarship-backend/internal/testimonial"
	"scholarship-backend/internal/visa"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// New builds the whole application so tests can run requests through the
// same error handling and middleware as production.
func New(cfg *config.Config, store media.Store, sender mailer.Sender) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(cfg),
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Explicit origin allow-list; credentials needed for the session cookie.
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins, ","),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Use(cacheHeaders)

	api := app.Group("/api")

	// Auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/logout", auth.LogoutHandler())
	api.Get("/auth/verify", auth.Protect(cfg), auth.VerifyHandler())

	protect := auth.Protect(cfg)
	adminOnly := auth.RequireRole(models.RoleAdmin)

	// Scholarships
	api.Get("/scholarships", scholarship.ListScholarshipsHandler())
	api.Get("/scholarships/recent/posts", scholarship.RecentPostsHandler())
	api.Get("/scholarships/:id", scholarship.GetScholarshipHandler())
	api.Get("/scholarships/:id/related", scholarship.RelatedScholarshipsHandler())
	api.Post("/scholarships", protect, scholarship.CreateScholarshipHandler(store))
	api.Put("/scholarships/:id", protect, scholarship.UpdateScholarshipHandler(store))
	api.Delete("/scholarships/:id", protect, adminOnly, scholarship.DeleteScholarshipHandler(store))

	// Visas
	api.Get("/visas", visa.ListVisasHandler())
	api.Get("/visas/:id", visa.GetVisaHandler())
	api.Post("/visas", protect, visa.CreateVisaHandler(store))
	api.Put("/visas/:id", protect, visa.UpdateVisaHandler(store))
	api.Delete("/visas/:id", protect, adminOnly, visa.DeleteVisaHandler(store))

	// Testimonials
	api.Get("/testimonials", testimonial.ListTestimonialsHandler())
	api.Get("/testimonials/:id", testimonial.GetTestimonialHandler())
	api.Post("/testimonials", protect, testimonial.CreateTestimonialHandler(store))
	api.Put("/testimonials/:id", protect, adminOnly, testimonial.UpdateTestimonialHandler(store))
	api.Delete("/testimonials/:id", protect, adminOnly, testimonial.DeleteTestimonialHandler(store))

	// Client management (admin only)
	clientRoutes := api.Group("/clients", protect, adminOnly)
	clientRoutes.Get("/", clients.ListClientsHandler())
	clientRoutes.Get("/:id", clients.GetClientHandler())
	clientRoutes.Put("/:id", clients.UpdateClientHandler(cfg))
	clientRoutes.Patch("/:id", clients.UpdateClientHandler(cfg))
	clientRoutes.Delete("/:id", clients.DeleteClientHandler(cfg))

	// Contact form relay
	api.Post("/v1/enquiry", enquiry.SendEnquiryHandler(sender))

	return app
}

// errorHandler is the single boundary converting every error into the
// response envelope. Error detail is only exposed outside production.
func errorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{
				"success": false,
				"message": e.Message,
			})
		}

		log.Println("Unexpected error:", err)
		body := fiber.Map{
			"success": false,
			"message": "Server Error",
		}
		if !cfg.IsProduction() {
			body["error"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}

// cacheHeaders marks public GET responses cacheable for a minute. This is
// the only caching in the system; there is no server-side response cache.
func cacheHeaders(c *fiber.Ctx) error {
	err := c.Next()
	if c.Method() == fiber.MethodGet && !strings.HasPrefix(c.Path(), "/api/auth") &&
		!strings.HasPrefix(c.Path(), "/api/clients") {
		c.Set(fiber.HeaderCacheControl, "public, max-age=60")
	} else {
		c.Set(fiber.HeaderCacheControl, "no-store")
	}
	return err
}

package enquiry

import (
	"fmt"
	"log"

	"scholarship-backend/internal/mailer"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type EnquiryRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Message     string `json:"message" validate:"required"`
	Scholarship string `json:"scholarship" validate:"required"`
}

// SendEnquiryHandler relays a contact-form submission by email. No retries;
// a failed send is a 500 to the caller.
func SendEnquiryHandler(sender mailer.Sender) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body EnquiryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "All fields are required.")
		}

		subject := fmt.Sprintf("Enquiry about %s", body.Scholarship)
		text := fmt.Sprintf(
			"Name: %s\nEmail: %s\nScholarship: %s\n\nMessage:\n%s\n",
			body.Name, body.Email, body.Scholarship, body.Message,
		)

		if err := sender.Send("Scholarship Enquiry", body.Email, subject, text); err != nil {
			log.Printf("[ERROR] could not send enquiry email: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to send email")
		}

		return c.JSON(fiber.Map{"success": true, "message": "Email sent successfully"})
	}
}

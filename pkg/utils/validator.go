package utils

import (
	"errors"
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"moderation-api/internal/validator"
)

// ValidateRequest parses the request body into req and validates it using
// validator tags
func ValidateRequest(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return err
	}

	if err := validator.Validate.Struct(req); err != nil {
		var validationErrors validatorv10.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, validationErr := range validationErrors {
				return fmt.Errorf("field '%s' failed validation on the '%s' tag", validationErr.Field(), validationErr.Tag())
			}
		}
		return err
	}

	return nil
}

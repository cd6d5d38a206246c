package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into a
// 400 with per-field messages.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		msgs := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("validation failed: %v", msgs))
	}
	return nil
}

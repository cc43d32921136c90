package middleware

import (
	"quiz-session/internal/domain"
	"quiz-session/internal/dto"
	"quiz-session/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware
const (
	LocalUploadFile   = "validated_file"
	LocalAnswerIndex  = "validated_index"
	LocalAnswerOption = "validated_option"
	LocalOptions      = "validated_options"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(validator *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validator,
	}
}

// ValidateUpload validates the multipart "file" field
func (vm *ValidationMiddleware) ValidateUpload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile("file")
		if err != nil {
			file = nil
		}

		if errors := vm.validator.ValidateUpload(file); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals(LocalUploadFile, file)
		return c.Next()
	}
}

// ValidateAnswer validates the :index path parameter and the answer body
func (vm *ValidationMiddleware) ValidateAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, errors := vm.validator.ValidateAnswerIndex(c.Params("index"))

		var req dto.AnswerRequest
		if err := c.BodyParser(&req); err != nil {
			errors = append(errors, domain.NewInvalidFormatError("body", "expected JSON object"))
		} else {
			errors = append(errors, vm.validator.ValidateAnswerRequest(req.Option)...)
		}
		if len(errors) > 0 {
			return errors
		}

		c.Locals(LocalAnswerIndex, index)
		c.Locals(LocalAnswerOption, *req.Option)
		return c.Next()
	}
}

// ValidateOptions validates the generation options body
func (vm *ValidationMiddleware) ValidateOptions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.OptionsRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("body", "expected JSON object")}
		}

		if errors := vm.validator.ValidateOptionsRequest(req.NumQuestions, req.UserFocus); len(errors) > 0 {
			return errors
		}

		c.Locals(LocalOptions, req)
		return c.Next()
	}
}

package serverutils

import (
	"errors"

	"codal-docs-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON
// error envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, err)
	}
}

func WriteError(ctx *fiber.Ctx, err error) error {
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		res := ErrorResponse(fiber.StatusBadRequest, "Validation failed")
		res.ErrorCode = "VALIDATION_ERROR"
		res.Errors = validationErrs
		return ctx.Status(fiber.StatusBadRequest).JSON(res)
	}

	if de, ok := apperror.As(err); ok {
		res := ErrorResponse(de.Status, de.Message)
		res.ErrorCode = de.Code
		if de.Field != "" {
			res.Errors = map[string]string{de.Field: de.Message}
		}
		return ctx.Status(de.Status).JSON(res)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
}

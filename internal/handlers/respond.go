package handlers

import (
	"errors"

	"attire/internal/models"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps the service error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrAuthRequired):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrVerificationFailed):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrUpstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// errorResponse writes the structured error body every handler returns on
// failure.
func errorResponse(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

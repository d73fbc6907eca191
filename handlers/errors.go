package handlers

import (
	"errors"

	"like-exchange-system/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP statuses. Anything
// outside the known taxonomy is a 500.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrNotRegistered):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrSelfClaim):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

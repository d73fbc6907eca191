package handlers

import (
	"strconv"

	"like-exchange-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLedgerRoutes(app *fiber.App, ledger *services.LedgerService) {
	app.Post("/register", func(c *fiber.Ctx) error {
		var req struct {
			ExternalID  int64  `json:"external_id"`
			DisplayName string `json:"display_name"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.ExternalID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "external_id is required"})
		}

		user, created, err := ledger.Register(req.ExternalID, req.DisplayName)
		if err != nil {
			return respondError(c, err)
		}
		status := "exists"
		if created {
			status = "created"
		}
		return c.JSON(fiber.Map{"status": status, "external_id": user.ExternalID})
	})

	app.Get("/me/:external_id", func(c *fiber.Ctx) error {
		externalID, err := strconv.ParseInt(c.Params("external_id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid external id"})
		}
		user, err := ledger.GetProfile(externalID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)
	})

	app.Get("/user/points/:external_id", func(c *fiber.Ctx) error {
		externalID, err := strconv.ParseInt(c.Params("external_id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid external id"})
		}
		points, err := ledger.GetBalance(externalID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"points": points})
	})

	app.Post("/admin/add_points", func(c *fiber.Ctx) error {
		var req struct {
			ExternalID int64  `json:"external_id"`
			Points     int64  `json:"points"`
			Secret     string `json:"secret"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if err := ledger.AdminAdjustBalance(req.ExternalID, req.Points, req.Secret); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

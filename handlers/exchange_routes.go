package handlers

import (
	"like-exchange-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupExchangeRoutes(app *fiber.App, exchange *services.ExchangeService) {
	app.Post("/request/create", func(c *fiber.Ctx) error {
		var req struct {
			ExternalID int64  `json:"external_id"`
			TargetUID  string `json:"target_uid"`
			Region     string `json:"region"`
			ProofURL   string `json:"proof_url"`
			Points     int64  `json:"points"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.TargetUID == "" || req.Region == "" || req.ProofURL == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "target_uid, region and proof_url are required"})
		}

		created, err := exchange.Create(req.ExternalID, req.TargetUID, req.Region, req.ProofURL, req.Points)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"request_id": created.ID,
			"status":     created.Status,
		})
	})

	app.Get("/requests/open", func(c *fiber.Ctx) error {
		requests, err := exchange.ListOpen()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(requests)
	})

	app.Post("/request/claim", func(c *fiber.Ctx) error {
		var req struct {
			ExternalID int64 `json:"external_id"`
			RequestID  uint  `json:"request_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if err := exchange.Claim(req.ExternalID, req.RequestID); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"status": "claimed"})
	})

	app.Post("/request/confirm", func(c *fiber.Ctx) error {
		var req struct {
			ExternalID    int64  `json:"external_id"`
			RequestID     uint   `json:"request_id"`
			ClaimProofURL string `json:"claim_proof_url"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.ClaimProofURL == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "claim_proof_url is required"})
		}
		if err := exchange.Confirm(req.ExternalID, req.RequestID, req.ClaimProofURL); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"status": "completed"})
	})
}

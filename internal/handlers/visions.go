package handlers

import (
	"github.com/alvaro/align-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) CreateVision(c *fiber.Ctx) error {
	var req models.CreateVisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if !req.Timeframe.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid timeframe",
		})
	}

	vision := h.Store.AddVision(req)
	return c.Status(fiber.StatusCreated).JSON(vision)
}

func (h *Handler) UpdateVision(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid vision ID",
		})
	}

	var patch models.VisionPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if patch.Timeframe != nil && !patch.Timeframe.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid timeframe",
		})
	}

	h.Store.UpdateVision(id, patch)
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handler) DeleteVision(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid vision ID",
		})
	}

	h.Store.DeleteVision(id)
	return c.JSON(fiber.Map{"ok": true})
}

type reorderRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

func (h *Handler) ReorderVisions(c *fiber.Ctx) error {
	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	h.Store.ReorderVisions(req.IDs)
	return c.JSON(h.Store.Snapshot().Visions)
}

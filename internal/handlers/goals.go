package handlers

import (
	"github.com/alvaro/align-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) CreateGoal(c *fiber.Ctx) error {
	var req models.CreateGoalRequest
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
	if req.VisionID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Vision ID is required",
		})
	}

	goal := h.Store.AddGoal(req)
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (h *Handler) UpdateGoal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var patch models.GoalPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if patch.Progress != nil && (*patch.Progress < 0 || *patch.Progress > 100) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Progress must be between 0 and 100",
		})
	}

	h.Store.UpdateGoal(id, patch)
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handler) DeleteGoal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	h.Store.DeleteGoal(id)
	return c.JSON(fiber.Map{"ok": true})
}

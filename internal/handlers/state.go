package handlers

import (
	"github.com/alvaro/align-api/internal/models"
	"github.com/gofiber/fiber/v2"
)

// State returns the full store snapshot the views render from.
func (h *Handler) State(c *fiber.Ctx) error {
	return c.JSON(h.Store.Snapshot())
}

func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	var patch models.SettingsPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if patch.Theme != nil && !patch.Theme.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid theme",
		})
	}

	return c.JSON(h.Store.UpdateSettings(patch))
}

func (h *Handler) ResetData(c *fiber.Ctx) error {
	h.Store.ResetData()
	return c.JSON(fiber.Map{"ok": true})
}

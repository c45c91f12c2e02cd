package handlers

import (
	"time"

	"github.com/alvaro/align-api/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) PutLog(c *fiber.Ctx) error {
	var log models.DayLog
	if err := c.BodyParser(&log); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if _, err := time.Parse("2006-01-02", log.Date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Date must be YYYY-MM-DD",
		})
	}
	if log.EnergyLevel < 1 || log.EnergyLevel > 5 || log.FocusLevel < 1 || log.FocusLevel > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Energy and focus levels must be between 1 and 5",
		})
	}
	if !log.ProgressRating.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid progress rating",
		})
	}

	saved := h.Store.AddLog(log)
	return c.JSON(saved)
}

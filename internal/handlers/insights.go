package handlers

import (
	"time"

	"github.com/alvaro/align-api/internal/insights"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) GoalProjection(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("goalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	pace := c.QueryFloat("pace", 5)
	if pace <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Pace must be positive",
		})
	}

	for _, goal := range h.Store.Snapshot().Goals {
		if goal.ID == id {
			projection, err := insights.Project(goal, pace, time.Now())
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return c.JSON(projection)
		}
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Goal not found",
	})
}

func (h *Handler) Momentum(c *fiber.Ctx) error {
	now := time.Now()
	month := c.Query("month", now.Format("2006-01"))

	state := h.Store.Snapshot()
	days, streak, err := insights.Momentum(state.Tasks, state.Logs, month, now)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Month must be YYYY-MM",
		})
	}

	return c.JSON(fiber.Map{
		"days":   days,
		"streak": streak,
	})
}

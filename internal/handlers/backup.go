package handlers

import (
	"errors"

	"github.com/alvaro/align-api/internal/store"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ExportBackup(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="align-backup.json"`)
	return c.JSON(h.Store.ExportBackup())
}

func (h *Handler) ImportBackup(c *fiber.Ctx) error {
	if err := h.Store.ImportBackup(c.Body()); err != nil {
		if errors.Is(err, store.ErrInvalidBackup) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid file",
			})
		}
		h.Log.WithError(err).Error("backup import failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to import backup",
		})
	}
	return c.JSON(fiber.Map{"ok": true})
}

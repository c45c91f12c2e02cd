package routes

import (
	"github.com/alvaro/align-api/internal/handlers"
	"github.com/alvaro/align-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/api", middleware.RequireReady(h.Session, h.Store))

	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/me", h.Me)

	api.Get("/state", h.State)

	visions := api.Group("/visions")
	visions.Post("/", h.CreateVision)
	visions.Put("/reorder", h.ReorderVisions)
	visions.Put("/:id", h.UpdateVision)
	visions.Delete("/:id", h.DeleteVision)

	goals := api.Group("/goals")
	goals.Post("/", h.CreateGoal)
	goals.Put("/:id", h.UpdateGoal)
	goals.Delete("/:id", h.DeleteGoal)

	tasks := api.Group("/tasks")
	tasks.Post("/", h.CreateTask)
	tasks.Post("/:id/toggle", h.ToggleTask)
	tasks.Put("/:id", h.UpdateTask)
	tasks.Delete("/:id", h.DeleteTask)

	api.Put("/logs", h.PutLog)
	api.Put("/settings", h.UpdateSettings)
	api.Post("/reset", h.ResetData)

	api.Get("/backup", h.ExportBackup)
	api.Post("/backup", h.ImportBackup)

	insights := api.Group("/insights")
	insights.Get("/projection/:goalId", h.GoalProjection)
	insights.Get("/momentum", h.Momentum)
}

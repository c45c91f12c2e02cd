package middleware

import "github.com/gofiber/fiber/v2"

// Loader is anything that can be mid-reload. The session provider and the
// store both qualify.
type Loader interface {
	Loading() bool
}

// RequireReady rejects requests while a full reload is in flight. The
// reload on startup and on session change is the only operation clients
// block on.
func RequireReady(loaders ...Loader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, l := range loaders {
			if l.Loading() {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "Store is loading, retry shortly",
				})
			}
		}
		return c.Next()
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mavhungutrezzy/umami-tube/database"
	"github.com/mavhungutrezzy/umami-tube/utils/response"
)

// HandleCheckHealth answers /ping once the database responds
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

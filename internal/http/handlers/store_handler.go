package handlers

import (
	applog "bazaar/internal/log"
	"bazaar/internal/repos"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

type StoreHandler struct {
	DB *sqlx.DB
}

// Initialize serves GET /initialize, resetting the store to the demo data.
func (h *StoreHandler) Initialize(c *fiber.Ctx) error {
	if err := repos.Initialize(c.UserContext(), h.DB); err != nil {
		return err
	}
	applog.Audit(c, "store.initialize", nil)
	return c.SendString("Finish")
}

func (h *StoreHandler) Health(c *fiber.Ctx) error {
	if err := h.DB.PingContext(c.UserContext()); err != nil {
		applog.Error(c, "health.db", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true})
}

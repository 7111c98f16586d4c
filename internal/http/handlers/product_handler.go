package handlers

import (
	"errors"
	"strconv"

	"bazaar/internal/domain"
	applog "bazaar/internal/log"
	"bazaar/internal/scoring"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const maxRelatedLimit = 50

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List serves GET /?page=N.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := validate.Page(c.Query("page"))
	items, err := h.Catalog.ListItems(c.UserContext(), page, currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"page": page, "products": items})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	d, err := h.Catalog.ItemDetail(c.UserContext(), id, currentUserID(c), ensureSID(c))
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This item is no longer available"})
	}
	if err != nil {
		return err
	}
	return c.JSON(d)
}

// Related serves GET /products/:id/related?limit=N.
func (h *ProductHandler) Related(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	limit := scoring.DefaultRelatedLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRelatedLimit {
			applog.Security(c, "validation.fail", map[string]any{"field": "limit"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be 1-50"})
		}
		limit = n
	}
	items, err := h.Catalog.Related(c.UserContext(), id, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"related_items": items})
}

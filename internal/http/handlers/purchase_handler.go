package handlers

import (
	"errors"
	"strconv"

	"bazaar/internal/domain"
	applog "bazaar/internal/log"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	Purchases *services.PurchaseService
}

// Buy serves POST /products/buy/:id and sends the buyer to their dashboard.
func (h *PurchaseHandler) Buy(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	err := h.Purchases.Buy(c.UserContext(), id, u.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This item is no longer available"})
	}
	if err != nil {
		return err
	}
	applog.Audit(c, "purchase.record", map[string]any{"product_id": id})
	return c.Redirect("/users/"+strconv.FormatInt(u.ID, 10), fiber.StatusSeeOther)
}

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

type CommentHandler struct {
	Comments *services.CommentService
}

type commentForm struct {
	Content string `json:"content" form:"content" validate:"required,max=1000"`
}

// Post serves POST /comments/:id.
func (h *CommentHandler) Post(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	var in commentForm
	if err := c.BodyParser(&in); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed comment"})
	}
	if err := validate.Struct(in); err != nil {
		applog.Security(c, "validation.fail", validate.FieldErrors(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "comment must be 1-1000 characters"})
	}

	err := h.Comments.Post(c.UserContext(), id, u.ID, in.Content)
	switch {
	case errors.Is(err, services.ErrEmptyComment):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This item is no longer available"})
	case err != nil:
		return err
	}
	applog.Audit(c, "comment.create", map[string]any{"product_id": id})
	return c.Redirect("/users/"+strconv.FormatInt(u.ID, 10), fiber.StatusSeeOther)
}

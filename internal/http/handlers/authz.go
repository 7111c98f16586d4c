package handlers

import (
	"bazaar/internal/domain"
	applog "bazaar/internal/log"
	"bazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Session attaches the logged-in user, if any, to the request. Lookup
// failures leave the request anonymous.
func Session(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			u, err := auth.CurrentUser(c.UserContext(), sid)
			if err != nil {
				applog.Error(c, "session.lookup", err, nil)
			} else if u != nil {
				c.Locals("user", u)
				c.Locals("uid", u.ID)
			}
		}
		return c.Next()
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			applog.Security(c, "access.denied.anonymous", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "please log in first"})
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// currentUserID is nil for anonymous requests.
func currentUserID(c *fiber.Ctx) *int64 {
	if u := currentUser(c); u != nil {
		id := u.ID
		return &id
	}
	return nil
}

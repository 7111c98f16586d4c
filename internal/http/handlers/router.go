package handlers

import (
	"errors"
	"time"

	applog "bazaar/internal/log"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ErrorHandler logs unexpected failures and answers without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Something went wrong. Please try again.",
	})
}

// NewApp builds the fiber app with middleware and routes. Extra middleware,
// such as an access logger, runs right after the request id is assigned.
func NewApp(d *Deps, mw ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    1 << 20,
	})

	app.Use(requestid.New())
	for _, h := range mw {
		app.Use(h)
	}
	app.Use(helmet.New())
	app.Use(Session(d.Auth))

	app.Get("/", d.ProductHandler.List)
	app.Get("/products/:id", d.ProductHandler.Detail)
	app.Get("/products/:id/related", d.ProductHandler.Related)
	app.Post("/products/buy/:id", RequireUser(), d.PurchaseHandler.Buy)
	app.Post("/comments/:id", RequireUser(), d.CommentHandler.Post)
	app.Get("/users/:id", d.UserHandler.Show)

	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Get("/logout", d.AuthHandler.Logout)

	app.Get("/initialize", d.StoreHandler.Initialize)
	app.Get("/healthz", d.StoreHandler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Page not found"})
	})
	return app
}

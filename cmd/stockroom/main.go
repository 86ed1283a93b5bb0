package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"stockroom/internal/config"
	"stockroom/internal/http/handlers"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo, Secret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "rate limit exceeded, retry soon",
			})
		},
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db, authSvc)
	api := app.Group("/api/v1")

	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "too many attempts, please try again later",
			})
		},
	})
	api.Post("/auth/login", loginLimiter, deps.AuthHandler.Login)

	authed := api.Group("", handlers.RequireAuth(authSvc))
	staff := handlers.RequireRole("staff")
	superAdmin := handlers.RequireRole("super_admin")

	authed.Get("/auth/me", deps.AuthHandler.Me)

	// Items
	authed.Get("/items", deps.ItemHandler.List)
	authed.Get("/items/:id", deps.ItemHandler.Get)
	authed.Post("/items", staff, deps.ItemHandler.Create)
	authed.Put("/items/:id", staff, deps.ItemHandler.Update)
	authed.Delete("/items/:id", superAdmin, deps.ItemHandler.Delete)

	// Categories
	authed.Get("/categories", deps.CategoryHandler.List)
	authed.Get("/categories/:id", deps.CategoryHandler.Get)
	authed.Post("/categories", staff, deps.CategoryHandler.Create)
	authed.Put("/categories/:id", staff, deps.CategoryHandler.Update)
	authed.Delete("/categories/:id", superAdmin, deps.CategoryHandler.Delete)

	// Locations
	authed.Get("/locations", deps.LocationHandler.List)
	authed.Get("/locations/:id", deps.LocationHandler.Get)
	authed.Post("/locations", staff, deps.LocationHandler.Create)
	authed.Put("/locations/:id", staff, deps.LocationHandler.Update)
	authed.Delete("/locations/:id", superAdmin, deps.LocationHandler.Delete)

	// Transaction ledger (append-only, staff and above)
	authed.Get("/transactions", staff, deps.TransactionHandler.List)
	authed.Post("/transactions", staff, deps.TransactionHandler.Create)

	// Requests
	authed.Get("/requests", deps.RequestHandler.List)
	authed.Get("/requests/:id", deps.RequestHandler.Get)
	authed.Post("/requests", deps.RequestHandler.Create)
	authed.Post("/requests/:id/approve", staff, deps.RequestHandler.Approve)
	authed.Post("/requests/:id/reject", staff, deps.RequestHandler.Reject)
	authed.Post("/requests/:id/complete", staff, deps.RequestHandler.Complete)
	authed.Post("/requests/:id/fulfill", staff, deps.RequestHandler.Fulfill)

	// User administration
	authed.Get("/users", superAdmin, deps.UserHandler.List)
	authed.Post("/users", superAdmin, deps.UserHandler.Create)
	authed.Post("/users/:id/deactivate", superAdmin, deps.UserHandler.Deactivate)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}

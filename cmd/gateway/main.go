package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"modeler-api/internal/common/config"
	"modeler-api/internal/common/middleware"
	"modeler-api/internal/gateway/handlers"
	"modeler-api/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe)
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Modeler API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	// Modeler Service
	modelerURL := getEnv("MODELER_URL", "http://localhost:3001")
	api.Post("/generate", proxy.ProxyTo(modelerURL+"/generate"))
	api.Post("/render", proxy.ProxyTo(modelerURL+"/render"))
	api.Post("/validate", proxy.ProxyTo(modelerURL+"/validate"))

	// Auth Service
	authURL := getEnv("AUTH_URL", "http://localhost:3002")
	api.Post("/login", proxy.ProxyTo(authURL+"/login"))
	api.Post("/logout", proxy.ProxyTo(authURL+"/logout"))
	api.Get("/users/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s", authURL, c.Params("id")))
	})
	api.Post("/users/:id/scenes", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s/scenes", authURL, c.Params("id")))
	})
	api.Get("/users/:id/scenes", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s/scenes", authURL, c.Params("id")))
	})
	api.Get("/users/:id/scenes/:sceneId", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s/scenes/%s", authURL, c.Params("id"), c.Params("sceneId")))
	})
	api.Delete("/users/:id/scenes/:sceneId", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s/scenes/%s", authURL, c.Params("id"), c.Params("sceneId")))
	})
	api.Get("/users/:id/scenes/:sceneId/preview", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s/scenes/%s/preview", authURL, c.Params("id"), c.Params("sceneId")))
	})
	api.Post("/users/:id/scenes/:sceneId/export", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/users/%s/scenes/%s/export", authURL, c.Params("id"), c.Params("sceneId")))
	})

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /generate to %s", modelerURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

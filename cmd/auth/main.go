package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"modeler-api/internal/auth/handlers"
	"modeler-api/internal/auth/repository"
	"modeler-api/internal/auth/service"
	"modeler-api/internal/common/config"
	"modeler-api/internal/common/middleware"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Auth Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3002"
	}

	dbPath := getenv("AUTH_DB_PATH", "data/db/auth.db")
	db, err := repository.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), "migrations/001_init_auth.sql"); err != nil {
		log.Fatalf("init db: %v", err)
	}

	sessionManager := service.NewSessionManager()
	fileStorage := service.NewFileStorage(getenv("EXPORT_DIR", "data/exports"))
	modelerURL := getenv("MODELER_URL", "http://localhost:3001")
	authHandler := handlers.NewAuthHandler(repo, sessionManager, fileStorage, modelerURL)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Auth Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Auth Routes
	// ============================================================

	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)
	app.Get("/users/:id", authHandler.GetUser)

	// ============================================================
	// Scene Archive Routes
	// ============================================================

	app.Post("/users/:id/scenes", authHandler.GenerateScene)
	app.Get("/users/:id/scenes", authHandler.ListScenes)
	app.Get("/users/:id/scenes/:sceneId", authHandler.GetScene)
	app.Delete("/users/:id/scenes/:sceneId", authHandler.DeleteScene)
	app.Get("/users/:id/scenes/:sceneId/preview", authHandler.GetScenePreview)
	app.Post("/users/:id/scenes/:sceneId/export", authHandler.ExportScene)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Auth Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getenv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

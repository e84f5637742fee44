package handlers

import (
	"encoding/json"
	"log"

	"modeler-api/internal/modeler/mapper"
	"modeler-api/internal/modeler/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Render Handler
// ============================================================

// RenderScene строит SVG-превью планировки из документа сцены.
func RenderScene(c fiber.Ctx) error {
	log.Printf("[RENDER] Received request")
	log.Printf("[RENDER] Content-Length: %d", len(c.Body()))

	if len(c.Body()) == 0 {
		return c.Status(400).JSON(fiber.Map{
			"error": "body required",
		})
	}

	var doc models.SceneDocument
	if err := json.Unmarshal(c.Body(), &doc); err != nil {
		log.Printf("[RENDER] Decode error: %v", err)
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid JSON payload",
		})
	}

	renderer := mapper.NewRenderer()
	svg, err := renderer.Render(&doc)
	if err != nil {
		log.Printf("[RENDER] Render error: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

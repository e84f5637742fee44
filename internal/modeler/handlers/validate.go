package handlers

import (
	"log"

	"modeler-api/internal/modeler/validator"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Validate Handler
// ============================================================

// ValidateScene проверяет форму документа сцены и возвращает отчет.
func ValidateScene(c fiber.Ctx) error {
	log.Printf("[VALIDATE] Received request, size: %d", len(c.Body()))

	if len(c.Body()) == 0 {
		return c.Status(400).JSON(fiber.Map{
			"error": "body required",
		})
	}

	report := validator.Validate(c.Body())
	if !report.Valid {
		log.Printf("[VALIDATE] Invalid document: %v", report.Errors)
	}

	return c.JSON(report)
}

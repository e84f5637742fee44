package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"modeler-api/internal/modeler/assembler"
	"modeler-api/internal/modeler/pipeline"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Generate Handler
// ============================================================

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateScene строит документ сцены из текстового описания.
// Принимает JSON {"prompt": "..."} или сырой текст в теле.
func GenerateScene(c fiber.Ctx) error {
	log.Printf("[MODELER] Received request")
	log.Printf("[MODELER] Content-Type: %s", c.Get("Content-Type"))
	log.Printf("[MODELER] Content-Length: %d", len(c.Body()))

	prompt := extractPrompt(c)
	log.Printf("[MODELER] Prompt: %q", prompt)

	generator := pipeline.New()
	doc, err := generator.Generate(prompt)
	if err != nil {
		var inconsistency *assembler.InconsistencyError
		if errors.As(err, &inconsistency) {
			log.Printf("[MODELER] Layout inconsistency: %v", err)
			return c.Status(500).JSON(fiber.Map{
				"error":      "layout inconsistency",
				"violations": inconsistency.Violations,
			})
		}
		log.Printf("[MODELER] Generation error: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Printf("[MODELER] Generated: rooms=%d walls=%d openings=%d confidence=%.2f",
		len(doc.Rooms), len(doc.Walls), len(doc.Openings), doc.Meta.Confidence)
	return c.JSON(doc)
}

// extractPrompt достает описание из JSON-тела или берет тело как
// есть. Пустой текст допустим: получится дефолтный документ.
func extractPrompt(c fiber.Ctx) string {
	body := c.Body()
	if len(body) == 0 {
		return ""
	}

	if strings.HasPrefix(c.Get("Content-Type"), "application/json") {
		var req generateRequest
		if err := json.Unmarshal(body, &req); err == nil {
			return req.Prompt
		}
	}

	return string(body)
}
